package search

import (
	"net/url"
	"strconv"
	"strings"
)

var listKeys = []string{KeySize, KeyBrand, KeyStyle}

// Decode parses a raw query string into a Filter. Malformed or unknown
// parameters fall back to defaults; it never fails.
//
// List values are split on literal commas before unescaping, so an item
// holding an escaped comma (%2C) survives as one item.
func Decode(raw string) Filter {
	values := url.Values{}
	lists := make(map[string][]string, len(listKeys))

	for _, pair := range strings.Split(strings.TrimPrefix(raw, "?"), "&") {
		if pair == "" || strings.Contains(pair, ";") {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}

		if isListKey(key) {
			for _, piece := range strings.Split(rawValue, ",") {
				if item, err := url.QueryUnescape(piece); err == nil {
					lists[key] = append(lists[key], item)
				}
			}
			continue
		}

		if value, err := url.QueryUnescape(rawValue); err == nil {
			values.Add(key, value)
		}
	}

	return decode(values, lists)
}

// DecodeValues builds a Filter from already parsed query values. The values
// are unescaped already, so every comma in a list value separates items.
func DecodeValues(values url.Values) Filter {
	lists := make(map[string][]string, len(listKeys))
	for _, key := range listKeys {
		for _, entry := range values[key] {
			lists[key] = append(lists[key], strings.Split(entry, ",")...)
		}
	}
	return decode(values, lists)
}

func decode(values url.Values, lists map[string][]string) Filter {
	f := Default()

	f.Sort = strings.TrimSpace(values.Get(KeySort))
	f.Size = normalizeList(lists[KeySize])
	f.Brand = normalizeList(lists[KeyBrand])
	f.Style = normalizeList(lists[KeyStyle])

	f.MinPrice = nonNegative(parseInt(values, KeyMinPrice, 0))
	f.MaxPrice = nonNegative(parseInt(values, KeyMaxPrice, DefaultMaxPrice))
	if f.MinPrice > f.MaxPrice {
		f.MinPrice, f.MaxPrice = f.MaxPrice, f.MinPrice
	}

	f.Page = min(nonNegative(parseInt(values, KeyPage, 0)), MaxPage)

	f.Limit = parseInt(values, KeyLimit, DefaultLimit)
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultLimit
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}

	return f
}

func isListKey(key string) bool {
	for _, k := range listKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Encode renders the canonical query string for f, omitting every key that
// holds its default value. Keys appear in a fixed order and list items are
// escaped one by one, then comma-joined.
func Encode(f Filter) string {
	var parts []string
	add := func(key, value string) {
		parts = append(parts, key+"="+value)
	}

	if f.Sort != "" {
		add(KeySort, url.QueryEscape(f.Sort))
	}
	for _, list := range []struct {
		key    string
		values []string
	}{
		{KeySize, f.Size},
		{KeyBrand, f.Brand},
		{KeyStyle, f.Style},
	} {
		if len(list.values) == 0 {
			continue
		}
		escaped := make([]string, len(list.values))
		for i, v := range list.values {
			escaped[i] = url.QueryEscape(v)
		}
		add(list.key, strings.Join(escaped, ","))
	}
	if f.MinPrice != 0 {
		add(KeyMinPrice, strconv.Itoa(f.MinPrice))
	}
	if f.MaxPrice != DefaultMaxPrice {
		add(KeyMaxPrice, strconv.Itoa(f.MaxPrice))
	}
	if f.Page != 0 {
		add(KeyPage, strconv.Itoa(f.Page))
	}
	if f.Limit != DefaultLimit {
		add(KeyLimit, strconv.Itoa(f.Limit))
	}

	return strings.Join(parts, "&")
}

// EncodeValues is Encode in url.Values form, for callers that merge the
// filter into a larger query. List items become repeated keys, which Decode
// reads back unchanged after values.Encode().
func EncodeValues(f Filter) url.Values {
	values := url.Values{}
	if f.Sort != "" {
		values.Set(KeySort, f.Sort)
	}
	values[KeySize] = append([]string(nil), f.Size...)
	values[KeyBrand] = append([]string(nil), f.Brand...)
	values[KeyStyle] = append([]string(nil), f.Style...)
	for _, key := range listKeys {
		if len(values[key]) == 0 {
			delete(values, key)
		}
	}
	if f.MinPrice != 0 {
		values.Set(KeyMinPrice, strconv.Itoa(f.MinPrice))
	}
	if f.MaxPrice != DefaultMaxPrice {
		values.Set(KeyMaxPrice, strconv.Itoa(f.MaxPrice))
	}
	if f.Page != 0 {
		values.Set(KeyPage, strconv.Itoa(f.Page))
	}
	if f.Limit != DefaultLimit {
		values.Set(KeyLimit, strconv.Itoa(f.Limit))
	}
	return values
}

func parseInt(values url.Values, key string, def int) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// normalizeList trims items and drops blanks and repeats, keeping first-seen
// order.
func normalizeList(items []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
