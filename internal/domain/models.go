package domain

// Models lists every table in dependency order for AutoMigrate.
func Models() []any {
	return []any{
		&Collection{},
		&Chapter{},
		&Hadith{},
		&HadithTag{},
		&User{},
		&Favorite{},
	}
}
