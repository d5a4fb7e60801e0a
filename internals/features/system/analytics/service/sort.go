package service

import (
	"sort"

	"itqan_backend/internals/features/system/analytics/dto"
)

// urutan: jumlah DESC, lalu nama ASC supaya stabil

func sortPages(s []dto.PageCount) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Views != s[j].Views {
			return s[i].Views > s[j].Views
		}
		return s[i].PagePath < s[j].PagePath
	})
}

func sortDevices(s []dto.DeviceCount) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Count != s[j].Count {
			return s[i].Count > s[j].Count
		}
		return s[i].DeviceType < s[j].DeviceType
	})
}

func sortCountries(s []dto.CountryCount) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Views != s[j].Views {
			return s[i].Views > s[j].Views
		}
		return s[i].Country < s[j].Country
	})
}
