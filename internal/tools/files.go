package tools

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/neuromux/neuromux/internal/catalog"
	"github.com/neuromux/neuromux/internal/llm"
	"github.com/neuromux/neuromux/internal/provider"
	"github.com/neuromux/neuromux/internal/tokens"
)

// renderFiles reads each path and wraps its content in BEGIN/END fences.
// The combined section must fit the file budget; going over is a
// contextOverflow with byte and token accounting, not a silent truncation.
func renderFiles(paths []string, fileBudget int) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}

	var (
		sb         strings.Builder
		totalBytes int
	)

	for _, path := range paths {
		if !filepath.IsAbs(path) {
			return "", provider.NewError(provider.KindInvalidRequest, "file path %q must be absolute", path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", provider.NewError(provider.KindInvalidRequest, "cannot read file %s: %v", path, err)
		}

		totalBytes += len(data)

		sb.WriteString(fmt.Sprintf("--- BEGIN FILE: %s ---\n", path))
		sb.Write(data)

		if len(data) > 0 && data[len(data)-1] != '\n' {
			sb.WriteString("\n")
		}

		sb.WriteString(fmt.Sprintf("--- END FILE: %s ---\n", path))

		if estimated := tokens.Estimate(sb.String()); estimated > fileBudget {
			return "", provider.NewError(provider.KindContextOverflow,
				"files exceed the %d-token file budget after %s (%d bytes, ~%d tokens total); drop files or choose a larger-context model",
				fileBudget, path, totalBytes, estimated)
		}
	}

	return sb.String(), nil
}

// imageMIMETypes maps supported extensions to their wire MIME type.
var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// loadImages resolves image inputs (absolute paths or data URLs) and
// validates format and total size against the model's limits.
func loadImages(inputs []string, caps *catalog.ModelCapabilities) ([]llm.Image, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	var (
		out        []llm.Image
		totalBytes int64
	)

	for _, input := range inputs {
		img, size, err := loadImage(input)
		if err != nil {
			return nil, err
		}

		format := strings.TrimPrefix(img.MIMEType, "image/")
		if !caps.SupportsImageFormat(format) {
			return nil, provider.NewError(provider.KindImagesTooLarge,
				"model %s does not accept %s images (supported: %s)",
				caps.CanonicalName, format, strings.Join(caps.SupportedImageFormats, ", "))
		}

		totalBytes += size

		out = append(out, img)
	}

	if totalBytes > caps.MaxImageBytes {
		return nil, provider.NewError(provider.KindImagesTooLarge,
			"images total %d bytes, above the %d-byte limit of %s",
			totalBytes, caps.MaxImageBytes, caps.CanonicalName)
	}

	return out, nil
}

func loadImage(input string) (llm.Image, int64, error) {
	if strings.HasPrefix(input, "data:") {
		return parseDataURL(input)
	}

	if !filepath.IsAbs(input) {
		return llm.Image{}, 0, provider.NewError(provider.KindInvalidRequest, "image path %q must be absolute", input)
	}

	mimeType, ok := imageMIMETypes[strings.ToLower(filepath.Ext(input))]
	if !ok {
		return llm.Image{}, 0, provider.NewError(provider.KindInvalidRequest,
			"unrecognized image extension on %s", input)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return llm.Image{}, 0, provider.NewError(provider.KindInvalidRequest, "cannot read image %s: %v", input, err)
	}

	return llm.Image{
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, int64(len(data)), nil
}

func parseDataURL(input string) (llm.Image, int64, error) {
	rest, found := strings.CutPrefix(input, "data:")
	if !found {
		return llm.Image{}, 0, provider.NewError(provider.KindInvalidRequest, "malformed data URL")
	}

	meta, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return llm.Image{}, 0, provider.NewError(provider.KindInvalidRequest, "data URL must be base64-encoded")
	}

	mimeType := strings.TrimSuffix(meta, ";base64")
	if !strings.HasPrefix(mimeType, "image/") {
		return llm.Image{}, 0, provider.NewError(provider.KindInvalidRequest, "data URL is not an image: %s", mimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return llm.Image{}, 0, provider.NewError(provider.KindInvalidRequest, "data URL payload is not valid base64: %v", err)
	}

	return llm.Image{MIMEType: mimeType, Data: payload}, int64(len(decoded)), nil
}
