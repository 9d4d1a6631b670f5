package variant

import (
	"net/url"
	"path"
	"slices"
	"strings"
	"unicode"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Gallery lists product images followed by the featured image, de-duplicated
// by URL. Images without a URL are dropped.
func Gallery(images []domain.Image, featured *domain.Image) []domain.Image {
	all := slices.Clone(images)
	if featured != nil {
		all = append(all, *featured)
	}

	seen := make(map[string]struct{}, len(all))
	out := make([]domain.Image, 0, len(all))
	for _, img := range all {
		if img.URL == "" {
			continue
		}
		if _, dup := seen[img.URL]; dup {
			continue
		}
		seen[img.URL] = struct{}{}
		out = append(out, img)
	}
	return out
}

// MainImage is the featured image, else the first gallery image.
func MainImage(gallery []domain.Image, featured *domain.Image) *domain.Image {
	if featured != nil && featured.URL != "" {
		img := *featured
		return &img
	}
	if len(gallery) > 0 {
		img := gallery[0]
		return &img
	}
	return nil
}

// ImageFor picks the image representing v: its own image, else the first
// gallery image whose caption names one of v's option values as a word, else
// the gallery image whose file name contains the longest of them, else
// fallback. Never panics on missing inputs.
func ImageFor(v *domain.Variant, gallery []domain.Image, fallback *domain.Image) *domain.Image {
	if v == nil {
		return fallback
	}
	if v.Image != nil && v.Image.URL != "" {
		img := *v.Image
		return &img
	}

	tokens := optionTokens(*v)
	if len(tokens) == 0 {
		return fallback
	}

	for _, img := range gallery {
		if containsAny(words(img.AltText), tokens) {
			found := img
			return &found
		}
	}
	best, bestLen := -1, 0
	for i, img := range gallery {
		if n := longestContained(fileStem(img.URL), tokens); n > bestLen {
			best, bestLen = i, n
		}
	}
	if best >= 0 {
		found := gallery[best]
		return &found
	}
	return fallback
}

// VariantForImage finds the variant a clicked image stands for: a variant
// whose own image has the same URL, else the first variant with an option
// value named in the image caption, else the variant with the longest option
// value contained in the image's file name.
func VariantForImage(img domain.Image, variants []domain.Variant) (domain.Variant, bool) {
	if img.URL != "" {
		for _, v := range variants {
			if v.Image != nil && v.Image.URL == img.URL {
				return v, true
			}
		}
	}

	caption := words(img.AltText)
	for _, v := range variants {
		if containsAny(caption, optionTokens(v)) {
			return v, true
		}
	}

	stem := fileStem(img.URL)
	best, bestLen := -1, 0
	for i, v := range variants {
		if n := longestContained(stem, optionTokens(v)); n > bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		return domain.Variant{}, false
	}
	return variants[best], true
}

// optionTokens lower-cases each option value and also splits multi-word
// values ("Light Blue") into their words.
func optionTokens(v domain.Variant) []string {
	var tokens []string
	for _, o := range v.SelectedOptions {
		for _, w := range words(o.Value) {
			if !slices.Contains(tokens, w) {
				tokens = append(tokens, w)
			}
		}
	}
	return tokens
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsAny(haystack, tokens []string) bool {
	for _, t := range tokens {
		if slices.Contains(haystack, t) {
			return true
		}
	}
	return false
}

// fileStem is the lower-cased last path segment of rawURL without its
// extension. Scheme and host are left out so "https" or ".com" never match.
func fileStem(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		rawURL = u.Path
	}
	name := path.Base(rawURL)
	return strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))
}

// longestContained is the length of the longest token s contains, 0 if none.
func longestContained(s string, tokens []string) int {
	longest := 0
	for _, t := range tokens {
		if len(t) > longest && strings.Contains(s, t) {
			longest = len(t)
		}
	}
	return longest
}
