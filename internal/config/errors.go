package config

import "errors"

var (
	ErrPageSizeRange        = errors.New("config: layout.page_size must be between 1 and 10")
	ErrDatabasePathRequired = errors.New("config: database_path is required")
)
