package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// inlineImageBudget caps an inline-encoded image reference.
	inlineImageBudget = 1 << 20

	inlineStartQuality = 80
	inlineMinQuality   = 10
	inlineQualityStep  = 10
)

// ErrImageTooLarge is returned when an image stays over the inline budget
// even at the lowest encoder quality.
var ErrImageTooLarge = errors.New("image exceeds inline size budget at minimum quality")

// UploadImage stores an image on the server and returns the public URL.
// When the server is unreachable the image is inline-encoded instead, so
// the returned reference is usable either way.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "failed to read image")
	}

	if !c.Reachable(ctx) {
		log.Warn().Msg("server unreachable, inline-encoding image")
		return InlineImage(bytes.NewReader(data), inlineImageBudget)
	}

	url, err := c.uploadImage(ctx, filename, data)
	if err != nil {
		log.Warn().Err(err).Msg("upload failed, inline-encoding image")
		return InlineImage(bytes.NewReader(data), inlineImageBudget)
	}

	return url, nil
}

func (c *Client) uploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", errors.Wrap(err, "failed to build multipart body")
	}

	if _, err := part.Write(data); err != nil {
		return "", errors.Wrap(err, "failed to write multipart body")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finish multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", body)
	if err != nil {
		return "", errors.Wrap(err, "failed to build request")
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload rejected: %s", resp.Status)
	}

	var result struct {
		URL string `json:"url"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "failed to decode upload response")
	}

	return result.URL, nil
}

// InlineImage encodes an image into a JPEG data URL, stepping the encoder
// quality down until the result fits the byte budget.
func InlineImage(r io.Reader, maxBytes int) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode image")
	}

	buf := new(bytes.Buffer)

	for quality := inlineStartQuality; quality >= inlineMinQuality; quality -= inlineQualityStep {
		buf.Reset()

		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return "", errors.Wrap(err, "failed to encode image")
		}

		encoded := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
		if len(encoded) <= maxBytes {
			return encoded, nil
		}
	}

	return "", ErrImageTooLarge
}
