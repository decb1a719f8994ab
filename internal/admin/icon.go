package admin

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"motoshop-be/internal/taxonomy"
)

// MaxIconSize bounds a staged icon upload.
const MaxIconSize = 2 << 20

var allowedIconTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// StageIcon reads an uploaded file into an unsaved icon asset. Anything that
// is not a small image is reported against the "icon" field.
func StageIcon(file *multipart.FileHeader) (*taxonomy.IconAsset, error) {
	if file == nil {
		return nil, &taxonomy.ValidationError{Field: "icon", Message: "is required"}
	}
	if file.Size > MaxIconSize {
		return nil, &taxonomy.ValidationError{Field: "icon", Message: fmt.Sprintf("must be at most %d bytes", MaxIconSize)}
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open icon %s: %w", file.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxIconSize+1))
	if err != nil {
		return nil, fmt.Errorf("read icon %s: %w", file.Filename, err)
	}

	return StageIconBytes(file.Filename, file.Header.Get("Content-Type"), data)
}

// StageIconBytes validates raw icon bytes already held in memory.
func StageIconBytes(filename, declaredType string, data []byte) (*taxonomy.IconAsset, error) {
	if len(data) == 0 {
		return nil, &taxonomy.ValidationError{Field: "icon", Message: "is empty"}
	}
	if len(data) > MaxIconSize {
		return nil, &taxonomy.ValidationError{Field: "icon", Message: fmt.Sprintf("must be at most %d bytes", MaxIconSize)}
	}

	contentType := iconContentType(declaredType, data)
	if !allowedIconTypes[contentType] {
		return nil, &taxonomy.ValidationError{Field: "icon", Message: "must be a png, jpeg, gif, webp or svg image"}
	}

	return &taxonomy.IconAsset{Filename: filename, ContentType: contentType, Data: data}, nil
}

// iconContentType trusts the sniffed type, except for SVG which sniffs as text.
func iconContentType(declared string, data []byte) string {
	sniffed := strings.SplitN(http.DetectContentType(data), ";", 2)[0]
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}

	declared = strings.ToLower(strings.TrimSpace(strings.SplitN(declared, ";", 2)[0]))
	if declared == "image/svg+xml" && (sniffed == "text/xml" || sniffed == "text/plain") {
		return declared
	}
	return sniffed
}
