package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaNode is the part of a json schema needed to walk object properties
type schemaNode struct {
	Ref        string                `json:"$ref"`
	Defs       map[string]schemaNode `json:"$defs"`
	Properties map[string]schemaNode `json:"properties"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Every object key of the marshaled config must be declared in the schema, so a schema
// generated from another config version is reported.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	return verify(cfg, []byte(embeddedSchema))
}

func verify(cfg *Config, schemaData []byte) error {
	var root schemaNode
	if err := json.Unmarshal(schemaData, &root); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if unknown := unknownKeys(root, resolve(root, root), configMap, ""); len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("keys not in schema: %s", strings.Join(unknown, ", "))
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// unknownKeys walks nested objects with declared properties. Objects without declared
// properties (maps) are not checked.
func unknownKeys(root, node schemaNode, obj map[string]any, prefix string) []string {
	if len(node.Properties) == 0 {
		return nil
	}
	var res []string
	for k, v := range obj {
		prop, ok := node.Properties[k]
		if !ok {
			res = append(res, prefix+k)
			continue
		}
		if sub, isObj := v.(map[string]any); isObj {
			res = append(res, unknownKeys(root, resolve(root, prop), sub, prefix+k+".")...)
		}
	}
	return res
}

func resolve(root, n schemaNode) schemaNode {
	for range 8 { // refs chain at most through a few defs
		if n.Ref == "" {
			return n
		}
		def, ok := root.Defs[strings.TrimPrefix(n.Ref, "#/$defs/")]
		if !ok {
			return n
		}
		n = def
	}
	return n
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Tweet.SiteURL == "" {
		return fmt.Errorf("tweet.site_url is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
