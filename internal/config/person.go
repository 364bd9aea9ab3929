// Copyright (C) 2023-2026  The Whey authors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strconv"
	"strings"
)

// Person is one entry of `authors`/`maintainers` (§3): a name and/or an
// email address. At least one of the two must be present.
type Person struct {
	Name  string
	Email string
}

func parsePeople(raw map[string]any, path, key string) ([]Person, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, errf(joinPath(path, key), "must be an array of tables")
	}
	people := make([]Person, 0, len(arr))
	for i, elem := range arr {
		entryPath := joinPathIdx(path, key, i)
		t, ok := elem.(map[string]any)
		if !ok {
			return nil, errf(entryPath, "must be a table with 'name' and/or 'email'")
		}
		name, _, err := str(t, entryPath, "name")
		if err != nil {
			return nil, err
		}
		email, _, err := str(t, entryPath, "email")
		if err != nil {
			return nil, err
		}
		if name == "" && email == "" {
			return nil, errf(entryPath, "must set at least one of 'name' or 'email'")
		}
		if strings.Contains(name, ",") {
			return nil, errf(entryPath+".name", "must not contain a comma")
		}
		people = append(people, Person{Name: name, Email: email})
	}
	return people, nil
}

func joinPathIdx(path, key string, i int) string {
	return joinPath(path, key) + "[" + strconv.Itoa(i) + "]"
}
