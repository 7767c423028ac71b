package catalog

import (
	styleprops "github.com/goliatone/go-styleprops"
	"github.com/goliatone/go-styleprops/layering"
)

// Definition describes one style property as stored in a catalog file.
type Definition struct {
	ID             string           `json:"id"`
	Type           string           `json:"type,omitempty"`
	Property       string           `json:"property,omitempty"`
	Name           string           `json:"name,omitempty"`
	Default        any              `json:"default,omitempty"`
	Full           int              `json:"full,omitempty"`
	Options        []map[string]any `json:"options,omitempty"`
	List           []map[string]any `json:"list,omitempty"`
	Requires       map[string][]any `json:"requires,omitempty"`
	RequiresParent map[string][]any `json:"requiresParent,omitempty"`
	Condition      string           `json:"condition,omitempty"`
}

// IsSelect reports whether the definition describes a select property.
func (d Definition) IsSelect() bool {
	return d.Type == styleprops.TypeSelect
}

// SelectOptions returns Options, or the legacy List when Options is empty.
func (d Definition) SelectOptions() []styleprops.SelectOption {
	source := d.Options
	if len(source) == 0 {
		source = d.List
	}
	return toSelectOptions(source)
}

// Attributes converts the definition into property attributes. Unset fields
// are omitted so property defaults apply.
func (d Definition) Attributes() map[string]any {
	attrs := map[string]any{styleprops.AttrID: d.ID}
	setString := func(key, value string) {
		if value != "" {
			attrs[key] = value
		}
	}
	setString(styleprops.AttrType, d.Type)
	setString(styleprops.AttrProperty, d.Property)
	setString(styleprops.AttrName, d.Name)
	setString(styleprops.AttrCondition, d.Condition)
	if d.Default != nil {
		attrs[styleprops.AttrDefault] = d.Default
	}
	if d.Full != 0 {
		attrs[styleprops.AttrFull] = d.Full
	}
	if len(d.Options) > 0 {
		attrs[styleprops.AttrOptions] = toSelectOptions(d.Options)
	}
	if len(d.List) > 0 {
		attrs[styleprops.AttrList] = toSelectOptions(d.List)
	}
	if len(d.Requires) > 0 {
		attrs[styleprops.AttrRequires] = layering.Clone(d.Requires)
	}
	if len(d.RequiresParent) > 0 {
		attrs[styleprops.AttrRequiresParent] = layering.Clone(d.RequiresParent)
	}
	return attrs
}

func (d Definition) clone() Definition {
	return layering.Clone(d)
}

func toSelectOptions(entries []map[string]any) []styleprops.SelectOption {
	out := make([]styleprops.SelectOption, len(entries))
	for i, entry := range entries {
		out[i] = styleprops.SelectOption(entry).Clone()
	}
	return out
}
