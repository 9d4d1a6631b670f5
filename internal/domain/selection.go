package domain

import (
	"maps"
	"net/url"
)

// Selection maps option name to chosen value. It may be partial and may name
// a combination no variant has.
type Selection map[string]string

func SelectionFromVariant(v Variant) Selection {
	sel := make(Selection, len(v.SelectedOptions))
	for _, o := range v.SelectedOptions {
		sel[o.Name] = o.Value
	}
	return sel
}

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	maps.Copy(out, s)
	return out
}

// With returns a copy of s with name set to value.
func (s Selection) With(name, value string) Selection {
	out := s.Clone()
	out[name] = value
	return out
}

func (s Selection) Equal(other Selection) bool {
	return maps.Equal(s, other)
}

// Query encodes the selection for a shareable link.
func (s Selection) Query() url.Values {
	values := make(url.Values, len(s))
	for name, value := range s {
		values.Set(name, value)
	}
	return values
}

// ParseSelection restores a selection from link query values, keeping only
// declared options and declared values.
func ParseSelection(values url.Values, options []Option) Selection {
	sel := make(Selection)
	for _, opt := range options {
		value := values.Get(opt.Name)
		if value == "" {
			continue
		}
		for _, allowed := range opt.Values {
			if allowed == value {
				sel[opt.Name] = value
				break
			}
		}
	}
	return sel
}
