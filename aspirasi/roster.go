//
// Copyright (C) 2025 The aspirasi-agent-go authors.  All rights reserved.
//
// aspirasi-agent-go is licensed under the Apache License Version 2.0.
//
//

package aspirasi

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// rosterFile is the on-disk shape of a member roster.
type rosterFile struct {
	Members []Member `yaml:"anggota"`
}

// LoadRoster reads a YAML member roster. Members without an id are
// assigned one. The file shape is:
//
//	anggota:
//	  - nama: Siti Rahayu
//	    fraksi: Fraksi Amanah
//	    dapil: Jawa Barat II
//	    komisi: Komisi V
func LoadRoster(path string) ([]Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(file.Members) == 0 {
		return nil, fmt.Errorf("roster %s contains no members", path)
	}

	for i := range file.Members {
		if file.Members[i].ID == "" {
			file.Members[i].ID = uuid.NewString()
		}
	}
	return file.Members, nil
}
