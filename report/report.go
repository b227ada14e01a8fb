// Package report renders changed-props reports for storage requests, change
// logs and consumers that validate the payload.
package report

import (
	"fmt"
	"strings"

	"github.com/casualjim/tracked/entity"
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/tidwall/sjson"
)

// JSON encodes entries as a JSON array. A nil report encodes as [].
func JSON(entries []entity.EntityChangedProps) ([]byte, error) {
	if entries == nil {
		entries = []entity.EntityChangedProps{}
	}
	return json.Marshal(entries)
}

// Patch builds a document keyed by entity id where every entity holds its
// changed props keyed by name:
//
//	{"<entityId>": {"entityName": "...", "parentEntityId": "...", "order": 1, "props": {"<propName>": "<value>"}}}
//
// Entries for the same entity are merged.
func Patch(entries []entity.EntityChangedProps) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	for _, entry := range entries {
		key := escapeKey(entry.EntityID)
		if doc, err = sjson.SetBytes(doc, key+".entityName", entry.EntityName); err != nil {
			return nil, err
		}
		if entry.ParentEntityID != "" {
			if doc, err = sjson.SetBytes(doc, key+".parentEntityId", entry.ParentEntityID); err != nil {
				return nil, err
			}
		}
		if entry.Order != nil {
			if doc, err = sjson.SetBytes(doc, key+".order", *entry.Order); err != nil {
				return nil, err
			}
		}
		for _, p := range entry.ChangedProps {
			if doc, err = sjson.SetBytes(doc, key+".props."+escapeKey(p.PropName), p.Value); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
	`:`, `\:`,
)

// escapeKey makes key usable as a single path component.
func escapeKey(key string) string {
	return pathEscaper.Replace(key)
}

var reflector = jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
}

// Schema describes the payload produced by JSON.
func Schema() *jsonschema.Schema {
	var v []entity.EntityChangedProps
	return reflector.Reflect(v)
}

// Markdown renders entries as one table per entity.
func Markdown(entries []entity.EntityChangedProps) string {
	if len(entries) == 0 {
		return "_No changes._\n"
	}

	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "### %s `%s`\n\n", entry.EntityName, entry.EntityID)
		if entry.ParentEntityID != "" {
			fmt.Fprintf(&b, "- parent: `%s`\n", entry.ParentEntityID)
		}
		if entry.Order != nil {
			fmt.Fprintf(&b, "- position: %d\n", *entry.Order)
		}
		if entry.ParentEntityID != "" || entry.Order != nil {
			b.WriteString("\n")
		}
		b.WriteString("| property | value |\n|---|---|\n")
		for _, p := range entry.ChangedProps {
			fmt.Fprintf(&b, "| %s | %s |\n", cell(p.PropName), cell(p.Value))
		}
		b.WriteString("\n")
	}
	return b.String()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func cell(s string) string {
	return cellEscaper.Replace(s)
}
