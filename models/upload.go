package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ImageUpload describes one local image file to be sent to the remote host.
//
// Values are immutable after construction and safe to share between the
// goroutines of a batch. The JSON tags define the record's shape in the
// final report, where every successful upload is printed next to the
// identifier the host assigned to it.
type ImageUpload struct {
	// Filepath is the path to a readable local image file.
	Filepath string `json:"filepath"`

	// Metadata holds optional key-value pairs attached to the image on
	// the host side. An empty map is omitted from the upload request.
	Metadata map[string]any `json:"metadata,omitempty"`

	// RequireSignedURLs asks the host to serve the image only through
	// signed delivery URLs. Mutually exclusive with ID.
	RequireSignedURLs bool `json:"requireSignedURLs"`

	// ID is an optional caller-chosen remote identifier. When empty the
	// host assigns one. Must not be combined with RequireSignedURLs.
	ID string `json:"id,omitempty"`
}

// FormData returns the non-file multipart fields of the upload request.
//
// RequireSignedURLs is always present as the literal string "true" or
// "false". Metadata is serialized into a single JSON string and included
// only when non-empty. ID is included only when set.
func (u ImageUpload) FormData() (map[string]string, error) {
	fields := map[string]string{
		"requireSignedURLs": strconv.FormatBool(u.RequireSignedURLs),
	}

	if len(u.Metadata) > 0 {
		metadata, err := json.Marshal(u.Metadata)
		if err != nil {
			return nil, fmt.Errorf("error serializing metadata of %s: %w", u.Filepath, err)
		}
		fields["metadata"] = string(metadata)
	}

	if u.ID != "" {
		fields["id"] = u.ID
	}

	return fields, nil
}
