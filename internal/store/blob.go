package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskform/internal/model"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const blobSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id"],
		"properties": {
			"id": {"type": "string"},
			"title": {"type": "string"},
			"date": {"type": "string"},
			"description": {"type": "string"}
		}
	}
}`

var compiledBlobSchema = jsonschema.MustCompileString("taskform://blob.schema.json", blobSchema)

// decodeBlob parses a persisted blob. Any parse or shape failure is
// reported as ErrUnreadable.
func decodeBlob(raw string) ([]model.Task, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty blob", ErrUnreadable)
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if err := compiledBlobSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return tasks, nil
}

func encodeBlob(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
