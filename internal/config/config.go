// Package config reads the UTF-16 section/name/value text file Xidi
// looks for next to the host executable.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ValueType is the expected shape of a configuration value.
type ValueType int

const (
	// TypeUnsupported marks a (section, name) pair the schema does not
	// recognize; any value for it is an error.
	TypeUnsupported ValueType = iota
	Integer
	Boolean
	String
	IntegerMultiValue
	BooleanMultiValue
	StringMultiValue
)

// Schema answers, for a given section and name, what value type (if
// any) is expected. Sections the schema has never heard of answer
// TypeUnsupported for every name.
type Schema interface {
	ValueTypeOf(section, name string) ValueType
}

// SchemaMap is a trivial map-backed Schema.
type SchemaMap map[string]map[string]ValueType

func (m SchemaMap) ValueTypeOf(section, name string) ValueType {
	names, ok := m[section]
	if !ok {
		return TypeUnsupported
	}

	return names[name]
}

func isMultiValue(t ValueType) bool {
	return t == IntegerMultiValue || t == BooleanMultiValue || t == StringMultiValue
}

// value holds one parsed setting's values, as raw strings; typed
// accessors on ConfigData convert lazily.
type value struct {
	typ    ValueType
	values []string
}

// ConfigData is the parsed, typed result of reading a configuration
// file. The zero value reads back as an empty configuration.
type ConfigData struct {
	sections map[string]map[string]*value
	errs     []string
}

// HasErrors reports whether any line failed to parse or validate.
func (c *ConfigData) HasErrors() bool {
	return len(c.errs) > 0
}

// Errors returns the recorded per-line error messages, in file order.
func (c *ConfigData) Errors() []string {
	return c.errs
}

func (c *ConfigData) lookup(section, name string) (*value, bool) {
	if c.sections == nil {
		return nil, false
	}

	names, ok := c.sections[section]
	if !ok {
		return nil, false
	}

	v, ok := names[name]

	return v, ok
}

// Int returns the single integer value for (section, name), or ok=false
// if absent.
func (c *ConfigData) Int(section, name string) (int64, bool) {
	v, ok := c.lookup(section, name)
	if !ok || len(v.values) == 0 {
		return 0, false
	}

	n, err := parseInt(v.values[0])
	if err != nil {
		return 0, false
	}

	return n, true
}

// Bool returns the single boolean value for (section, name).
func (c *ConfigData) Bool(section, name string) (bool, bool) {
	v, ok := c.lookup(section, name)
	if !ok || len(v.values) == 0 {
		return false, false
	}

	b, err := parseBool(v.values[0])
	if err != nil {
		return false, false
	}

	return b, true
}

// String returns the single string value for (section, name).
func (c *ConfigData) String(section, name string) (string, bool) {
	v, ok := c.lookup(section, name)
	if !ok || len(v.values) == 0 {
		return "", false
	}

	return v.values[0], true
}

// Strings returns every value recorded for (section, name), in the
// order they appeared in the file.
func (c *ConfigData) Strings(section, name string) []string {
	v, ok := c.lookup(section, name)
	if !ok {
		return nil
	}

	out := make([]string, len(v.values))
	copy(out, v.values)

	return out
}

// StringSet returns the values recorded for (section, name) with
// duplicates removed, preserving first-seen order.
func (c *ConfigData) StringSet(section, name string) []string {
	vals := c.Strings(section, name)
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))

	for _, v := range vals {
		if _, dup := seen[v]; dup {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

// Read parses the config file at path against schema. A missing file is
// not an error: Read returns an empty ConfigData.
func Read(path string, schema Schema) (*ConfigData, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ConfigData{}, nil
		}

		return nil, fmt.Errorf("config.Read: %w", err)
	}
	defer f.Close()

	return parse(f, schema)
}

// decodeUTF16 transcodes a UTF-16 (BOM-sniffed, default LE) byte stream
// to UTF-8 so the line scanner can work in plain Go strings.
func decodeUTF16(r io.Reader) (io.Reader, error) {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()

	decoded, err := decoder.Bytes(mustReadAll(r))
	if err != nil {
		return nil, fmt.Errorf("config.decodeUTF16: %w", err)
	}

	return bytes.NewReader(decoded), nil
}

func mustReadAll(r io.Reader) []byte {
	b, _ := io.ReadAll(r)

	return b
}

func parse(r io.Reader, schema Schema) (*ConfigData, error) {
	decoded, err := decodeUTF16(r)
	if err != nil {
		return nil, err
	}

	return parseDecoded(decoded, schema)
}

// parseDecoded parses already-UTF-8 text; it is the parser core that
// parse uses after UTF-16 transcoding, kept separate so it can be tested
// directly against plain Go string literals.
func parseDecoded(r io.Reader, schema Schema) (*ConfigData, error) {
	c := &ConfigData{sections: map[string]map[string]*value{}}

	scanner := bufio.NewScanner(r)
	section := ""
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				c.addErr(lineNo, "malformed section header")
				continue
			}

			section = strings.TrimSpace(line[1 : len(line)-1])
			if c.sections[section] == nil {
				c.sections[section] = map[string]*value{}
			}

			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			c.addErr(lineNo, "expected name = value")
			continue
		}

		name := strings.TrimSpace(line[:eq])
		raw := strings.TrimSpace(line[eq+1:])

		c.setValue(lineNo, section, name, raw, schema)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config.parse: %w", err)
	}

	return c, nil
}

func (c *ConfigData) addErr(line int, msg string) {
	c.errs = append(c.errs, fmt.Sprintf("line %d: %s", line, msg))
}

func (c *ConfigData) setValue(line int, section, name, raw string, schema Schema) {
	typ := schema.ValueTypeOf(section, name)
	if typ == TypeUnsupported {
		c.addErr(line, fmt.Sprintf("unrecognized setting %q in section %q", name, section))
		return
	}

	if err := validateType(typ, raw); err != nil {
		c.addErr(line, fmt.Sprintf("%q: %v", name, err))
		return
	}

	names := c.sections[section]
	if names == nil {
		names = map[string]*value{}
		c.sections[section] = names
	}

	existing, ok := names[name]

	if !isMultiValue(typ) {
		if ok {
			c.addErr(line, fmt.Sprintf("duplicate single-valued setting %q", name))
			return
		}

		names[name] = &value{typ: typ, values: []string{raw}}
		return
	}

	if !ok {
		existing = &value{typ: typ}
		names[name] = existing
	}

	existing.values = append(existing.values, raw)
}

func validateType(typ ValueType, raw string) error {
	switch typ {
	case Integer, IntegerMultiValue:
		_, err := parseInt(raw)
		return err
	case Boolean, BooleanMultiValue:
		_, err := parseBool(raw)
		return err
	default:
		return nil
	}
}

func parseInt(s string) (int64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseInt(s[2:], 16, 64)
	}

	return strconv.ParseInt(s, 10, 64)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "on", "1":
		return true, nil
	case "no", "false", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q", s)
	}
}
