package service

// Verse satu ayat dengan teks berharakat
type Verse struct {
	Surah     int    `json:"surah"`
	SurahName string `json:"surah_name"`
	Ayah      int    `json:"ayah"`
	Text      string `json:"text"`
}

var fatiha = []Verse{
	{1, "الفاتحة", 1, "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ"},
	{1, "الفاتحة", 2, "الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ"},
	{1, "الفاتحة", 3, "الرَّحْمَٰنِ الرَّحِيمِ"},
	{1, "الفاتحة", 4, "مَالِكِ يَوْمِ الدِّينِ"},
	{1, "الفاتحة", 5, "إِيَّاكَ نَعْبُدُ وَإِيَّاكَ نَسْتَعِينُ"},
	{1, "الفاتحة", 6, "اهْدِنَا الصِّرَاطَ الْمُسْتَقِيمَ"},
	{1, "الفاتحة", 7, "صِرَاطَ الَّذِينَ أَنْعَمْتَ عَلَيْهِمْ غَيْرِ الْمَغْضُوبِ عَلَيْهِمْ وَلَا الضَّالِّينَ"},
}

// Fatiha salinan ayat-ayat al-Fatihah
func Fatiha() []Verse {
	out := make([]Verse, len(fatiha))
	copy(out, fatiha)
	return out
}
