package handlers

import (
	"encoding/json"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/storage"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// payload reads optional fields from a JSON object, a multipart form or an
// urlencoded form. Fields that are absent come back as nil.
type payload struct {
	json   map[string]json.RawMessage
	form   map[string][]string
	files  map[string][]*multipart.FileHeader
	errors map[string]any
}

func readPayload(c *fiber.Ctx) (*payload, error) {
	p := &payload{errors: map[string]any{}}
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, invalidPayload()
		}
		p.form = form.Value
		p.files = form.File
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		p.form = map[string][]string{}
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			p.form[string(key)] = append(p.form[string(key)], string(value))
		})
	default:
		p.json = map[string]json.RawMessage{}
		if body := c.Body(); len(strings.TrimSpace(string(body))) > 0 {
			if err := json.Unmarshal(body, &p.json); err != nil {
				return nil, invalidPayload()
			}
		}
	}
	return p, nil
}

func (p *payload) fail(key, msg string) {
	if _, seen := p.errors[key]; !seen {
		p.errors[key] = msg
	}
}

// err returns the accumulated field errors, if any.
func (p *payload) err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return apperrors.NewValidationError("Validation errors", p.errors)
}

// formValue returns the first value of key. Repeated form fields keep the
// first occurrence.
func (p *payload) formValue(key string) (string, bool) {
	values, ok := p.form[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (p *payload) raw(key string) (json.RawMessage, bool) {
	raw, ok := p.json[key]
	if !ok || strings.TrimSpace(string(raw)) == "null" {
		return nil, false
	}
	return raw, true
}

func (p *payload) str(key string) *string {
	if p.json == nil {
		if v, ok := p.formValue(key); ok {
			return &v
		}
		return nil
	}
	raw, ok := p.raw(key)
	if !ok {
		return nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		p.fail(key, key+" must be a string")
		return nil
	}
	return &v
}

func (p *payload) list(key, sep string) *[]string {
	if p.json == nil {
		values, ok := p.form[key]
		if !ok {
			values, ok = p.form[key+"[]"]
		}
		if !ok {
			return nil
		}
		var items []string
		if len(values) == 1 {
			items = apperrors.ParseListText(values[0], sep)
		} else {
			items = apperrors.CleanList(values)
		}
		return &items
	}
	raw, ok := p.raw(key)
	if !ok {
		return nil
	}
	items, err := apperrors.ParseListJSON(raw, sep)
	if err != nil {
		p.fail(key, key+" must be an array or a delimited string")
		return nil
	}
	if items == nil {
		items = []string{}
	}
	return &items
}

func (p *payload) float(key string) *float64 {
	text, present := p.scalar(key)
	if !present {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		p.fail(key, key+" must be a number")
		return nil
	}
	return &v
}

func (p *payload) boolean(key string) *bool {
	text, present := p.scalar(key)
	if !present {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "1", "on":
		v := true
		return &v
	case "false", "0", "off", "":
		v := false
		return &v
	}
	p.fail(key, key+" must be a boolean")
	return nil
}

// scalar returns a number, boolean or string field as text.
func (p *payload) scalar(key string) (string, bool) {
	if p.json == nil {
		return p.formValue(key)
	}
	raw, ok := p.raw(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

// upload returns the file sent under key. The caller closes the returned
// reader once the request is done.
func (p *payload) upload(key string) (*storage.Upload, func(), error) {
	files := p.files[key]
	if len(files) == 0 {
		return nil, func() {}, nil
	}
	header := files[0]
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, apperrors.NewInternalError(err)
	}
	return &storage.Upload{Filename: header.Filename, Size: header.Size, Reader: f}, func() { _ = f.Close() }, nil
}
