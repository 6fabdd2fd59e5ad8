package db

// SetRaw overwrites a settings value verbatim.
func (s *SQLiteStorage) SetRaw(key, value string) error {
	_, err := s.db.Exec(`insert into settings(key, value) values(?, ?)
	    on conflict(key) do update set value = excluded.value`, key, value)

	return err
}
