package dbtype

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// StringArray membungkus pq.StringArray: text[] di Postgres, text (literal array) di driver lain.
type StringArray pq.StringArray

func (a StringArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

func (a *StringArray) Scan(src any) error {
	return (*pq.StringArray)(a).Scan(src)
}

func (StringArray) GormDataType() string { return "text[]" }

func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Contains: ekspresi "kolom mengandung nilai" yang jalan di Postgres & SQLite.
func Contains(db *gorm.DB, column, value string) clause.Expr {
	if db.Dialector.Name() == "postgres" {
		return gorm.Expr("? = ANY("+column+")", value)
	}
	// literal array: {a,b,"c d"}
	return gorm.Expr(column+" LIKE ?", "%"+value+"%")
}
