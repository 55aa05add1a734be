package security

import (
	"bytes"
	"image"
	"strings"

	// Decoders registered for image.DecodeConfig.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gabriel-vasile/mimetype"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Extension matching the detected content
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Declared media types accepted for a resume. image/jpg is not registered
// but browsers still send it.
var allowedResumeTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// Magic byte signatures keyed by detected MIME type
var magicBytes = map[string][][]byte{
	"image/jpeg": {{0xFF, 0xD8, 0xFF}},
	"image/png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"image/webp": {{0x52, 0x49, 0x46, 0x46}}, // RIFF header
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// IsAllowedResumeType reports whether the client-declared type is accepted.
func IsAllowedResumeType(contentType string) bool {
	return allowedResumeTypes[mediaType(contentType)]
}

// MatchesDeclaredType reports whether the sniffed MIME type is the one the
// client declared. image/jpg counts as image/jpeg.
func MatchesDeclaredType(contentType, detected string) bool {
	declared := mediaType(contentType)
	if declared == "image/jpg" {
		declared = "image/jpeg"
	}
	return declared != "" && declared == mediaType(detected)
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// ValidateResume checks that the resume content really is a PNG, JPEG or WEBP image:
// 1. MIME detection on the content
// 2. Magic byte verification
// 3. Image header decode
func ValidateResume(data []byte) FileValidationResult {
	detected := mimetype.Detect(data)
	result := FileValidationResult{DetectedMIME: detected.String()}

	var mime string
	for candidate := range magicBytes {
		if detected.Is(candidate) {
			mime = candidate
			break
		}
	}
	if mime == "" {
		result.Error = "MIME type not allowed: " + detected.String()
		return result
	}
	result.Extension = extensions[mime]

	if !validateMagicBytes(mime, data) {
		result.Error = "file content does not match its type"
		return result
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		result.Error = "image could not be decoded: " + err.Error()
		return result
	}
	if "image/"+format != mime {
		result.Error = "decoded format " + format + " does not match " + mime
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(mime string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range magicBytes[mime] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
