package entity

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Timestamp fecha persistida en los blobs. Acepta los formatos que dejaba el navegador
// (ISO, toLocaleString en-US, toString, toUTCString, milisegundos Unix) y, si ninguno aplica,
// conserva el texto original en Raw para reescribirlo tal cual.
type Timestamp struct {
	time.Time
	Raw string // texto no interpretable; vacío si Time es válido
}

// NewTimestamp envuelve t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Formatos sin zona se interpretan en UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006 3:04:05 PM",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	time.RFC1123,
}

// toString() agrega el nombre de la zona entre paréntesis.
var zoneNameSuffix = regexp.MustCompile(`\s*\([^)]*\)$`)

// ParseTimestamp interpreta s con los formatos conocidos. ok=false si ninguno aplica.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromUnixNumber(ms), true
	}
	s = zoneNameSuffix.ReplaceAllString(s, "")
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date.now() da milisegundos; valores chicos se toman como segundos.
func fromUnixNumber(n int64) time.Time {
	if n > 1e11 || n < -1e11 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

// Text representación estable: Raw si no se pudo interpretar, RFC 3339 en UTC si no.
func (t Timestamp) Text() string {
	if t.Time.IsZero() && t.Raw != "" {
		return t.Raw
	}
	return t.Time.UTC().Format(time.RFC3339Nano)
}

// MarshalJSON escribe RFC 3339, o el texto original si nunca se pudo interpretar.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() && t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	return t.Time.MarshalJSON()
}

// UnmarshalJSON nunca falla por el contenido: lo que no es fecha queda en Raw.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = Timestamp{}
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if parsed, ok := ParseTimestamp(s); ok {
			t.Time = parsed
			return nil
		}
		t.Raw = s
		return nil
	}
	if f, err := strconv.ParseFloat(string(b), 64); err == nil {
		t.Time = fromUnixNumber(int64(f))
		return nil
	}
	t.Raw = string(b)
	return nil
}
