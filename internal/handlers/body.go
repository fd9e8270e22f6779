package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	msgNull      = "This field may not be null."
	msgNotString = "Not a valid string."
)

// maxBodySize bounds JSON bodies; base64 images inflate by a third.
const maxBodySize = services.MaxImageSize*4/3 + 1<<20

var errBodyTooLarge = errors.New("request body too large")

// parseError marks a body that could not be decoded at all.
type parseError struct{ err error }

func (e *parseError) Error() string { return e.err.Error() }

// requestBody gives uniform access to JSON and form encoded fields.
type requestBody struct {
	c      *gin.Context
	fields map[string]json.RawMessage
	form   bool
}

func readBody(c *gin.Context) (*requestBody, error) {
	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(services.MaxImageSize); err != nil {
			return nil, &parseError{fmt.Errorf("multipart form parse error - %w", err)}
		}
		return &requestBody{c: c, form: true}, nil
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, &parseError{fmt.Errorf("form parse error - %w", err)}
		}
		return &requestBody{c: c, form: true}, nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
	if err != nil {
		return nil, &parseError{err}
	}
	if len(data) > maxBodySize {
		return nil, &parseError{errBodyTooLarge}
	}

	b := &requestBody{c: c, fields: map[string]json.RawMessage{}}
	if len(bytes.TrimSpace(data)) == 0 {
		return b, nil
	}
	if err := json.Unmarshal(data, &b.fields); err != nil {
		return nil, &parseError{err}
	}
	return b, nil
}

// has reports whether the client sent the key at all.
func (b *requestBody) has(name string) bool {
	if b.form {
		if _, ok := b.c.GetPostForm(name); ok {
			return true
		}
		_, err := b.c.FormFile(name)
		return err == nil
	}
	_, ok := b.fields[name]
	return ok
}

func (b *requestBody) isNull(name string) bool {
	if b.form {
		return false
	}
	raw, ok := b.fields[name]
	return ok && string(bytes.TrimSpace(raw)) == "null"
}

// String returns the field as a string, or nil when absent. Null and
// non-string values are recorded on verr.
func (b *requestBody) String(verr *services.ValidationError, name string) *string {
	if !b.has(name) {
		return nil
	}
	if b.form {
		v := b.c.PostForm(name)
		return &v
	}
	if b.isNull(name) {
		verr.Add(name, msgNull)
		return nil
	}
	var v string
	if err := json.Unmarshal(b.fields[name], &v); err != nil {
		verr.Add(name, msgNotString)
		return nil
	}
	return &v
}

// PK reads a nullable primary key reference. An empty form value means null.
func (b *requestBody) PK(verr *services.ValidationError, name string) *uint {
	if b.form {
		v := b.c.PostForm(name)
		if v == "" {
			return nil
		}
		return b.parsePK(verr, name, v)
	}
	if b.isNull(name) {
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(b.fields[name]))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		verr.Add(name, incorrectPKType("str"))
		return nil
	}
	switch t := v.(type) {
	case json.Number:
		n = t
	case string:
		n = json.Number(t)
	case bool:
		verr.Add(name, incorrectPKType("bool"))
		return nil
	case []interface{}:
		verr.Add(name, incorrectPKType("list"))
		return nil
	default:
		verr.Add(name, incorrectPKType("dict"))
		return nil
	}
	return b.parsePK(verr, name, n.String())
}

func (b *requestBody) parsePK(verr *services.ValidationError, name, raw string) *uint {
	id, ok := utils.ParseID(raw)
	if !ok {
		if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
			verr.Add(name, fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", raw))
		} else {
			verr.Add(name, incorrectPKType("str"))
		}
		return nil
	}
	return &id
}

// Image reads an upload from a multipart file or a base64 data URI.
// Empty content with present=true means the image is being cleared.
func (b *requestBody) Image(verr *services.ValidationError, name string) (data []byte, present bool) {
	if b.form {
		if fh, err := b.c.FormFile(name); err == nil {
			f, err := fh.Open()
			if err != nil {
				verr.Add(name, services.MsgInvalidImage)
				return nil, true
			}
			defer f.Close()
			content, err := services.ReadImage(f)
			if err != nil {
				verr.Add(name, services.MsgInvalidImage)
				return nil, true
			}
			return content, true
		}
	}
	if !b.has(name) {
		return nil, false
	}
	if b.isNull(name) {
		return nil, true
	}
	value := b.String(verr, name)
	if value == nil || *value == "" {
		return nil, true
	}
	decoded, err := services.DecodeDataURI(*value)
	if err != nil {
		verr.Add(name, services.MsgInvalidImage)
		return nil, true
	}
	return decoded, true
}

func incorrectPKType(kind string) string {
	return fmt.Sprintf("Incorrect type. Expected pk value, received %s.", kind)
}

// respondBodyError renders errors produced while reading a request body.
func respondBodyError(c *gin.Context, err error) {
	var perr *parseError
	if errors.As(err, &perr) {
		if errors.Is(perr.err, errBodyTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "Request body too large."})
			return
		}
		badRequest(c, perr.err)
		return
	}
	RespondError(c, err)
}
