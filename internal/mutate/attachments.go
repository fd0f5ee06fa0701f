package mutate

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ticketdesk/internal/model"
)

// AddAttachments appends every incoming file whose name is not already attached (or
// earlier in the same batch). Rejected names are reported together in a
// *DuplicateAttachmentsError; the returned list holds the accepted files either way.
func AddAttachments(existing, incoming []model.Attachment) ([]model.Attachment, error) {
	out := append([]model.Attachment{}, existing...)
	seen := make(map[string]struct{}, len(out)+len(incoming))
	for _, f := range out {
		seen[f.Name] = struct{}{}
	}
	var dups []string
	for _, f := range incoming {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			continue
		}
		if _, ok := seen[f.Name]; ok {
			dups = append(dups, f.Name)
			continue
		}
		seen[f.Name] = struct{}{}
		out = append(out, f)
	}
	if len(dups) > 0 {
		return out, &DuplicateAttachmentsError{Names: dups}
	}
	return out, nil
}

// RemoveAttachment drops the file named name; removed is false when it was not attached.
func RemoveAttachment(files []model.Attachment, name string) (out []model.Attachment, removed bool) {
	out = make([]model.Attachment, 0, len(files))
	for _, f := range files {
		if f.Name == name {
			removed = true
			continue
		}
		out = append(out, f)
	}
	return out, removed
}

// AttachmentFromPath describes a local file. Only metadata is kept; contents are
// never read.
func AttachmentFromPath(path string, now time.Time) (model.Attachment, error) {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return model.Attachment{}, fmt.Errorf("attachment: missing path")
	}
	fi, err := os.Stat(path)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("attachment: %w", err)
	}
	if fi.IsDir() {
		return model.Attachment{}, fmt.Errorf("attachment: %s is a directory", path)
	}
	return model.Attachment{
		Name:       fi.Name(),
		Size:       fi.Size(),
		Type:       guessMimeType(fi.Name()),
		UploadedAt: now.UTC().Format(time.RFC3339),
	}, nil
}

func guessMimeType(filename string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}
