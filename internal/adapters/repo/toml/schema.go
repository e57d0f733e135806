package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Records []recordSchema `toml:"records"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported usage schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func (s *fileSchema) find(collection, userID string) *recordSchema {
	for i := range s.Records {
		if s.Records[i].Collection == collection && s.Records[i].UserID == userID {
			return &s.Records[i]
		}
	}
	return nil
}

type recordSchema struct {
	Collection    string `toml:"collection"`
	UserID        string `toml:"user_id"`
	CreatedAt     string `toml:"created_at"`
	UpdatedAt     string `toml:"updated_at"`
	Chats         int64  `toml:"num_chats"`
	CharactersIn  int64  `toml:"num_characters_in"`
	CharactersOut int64  `toml:"num_characters_out"`
	Images        int64  `toml:"num_images"`
}
