package agent

import (
	"fmt"
	"strconv"
	"strings"

	"hotelbot/internal/domain"
)

// Tool arguments come from the model as JSON, so numbers may arrive as
// float64, as numeric strings, or with a decimal comma.

// argString returns the first non-empty string among keys.
func argString(args map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := args[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// argFloat: number from several keys (float64/int/string like "4,5").
func argFloat(args map[string]any, keys ...string) (*float64, error) {
	for _, k := range keys {
		switch v := args[k].(type) {
		case nil:
			continue
		case float64:
			f := v
			return &f, nil
		case int:
			f := float64(v)
			return &f, nil
		case int64:
			f := float64(v)
			return &f, nil
		case string:
			s := decimalComma(strings.TrimSpace(v))
			if s == "" {
				continue
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %q is not a number", k, v)
			}
			return &f, nil
		default:
			return nil, fmt.Errorf("%s: unexpected type %T", k, v)
		}
	}
	return nil, nil
}

// decimalComma turns "4,5" into "4.5". A comma followed by three digits, or
// mixed with a dot, is a thousands separator and is left for ParseFloat to reject.
func decimalComma(s string) string {
	i := strings.IndexByte(s, ',')
	if i < 0 || strings.Count(s, ",") > 1 || strings.Contains(s, ".") {
		return s
	}
	if frac := len(s) - i - 1; frac < 1 || frac > 2 {
		return s
	}
	return s[:i] + "." + s[i+1:]
}

// argInt64: whole number from several keys (float64/int/string).
func argInt64(args map[string]any, keys ...string) (*int64, error) {
	for _, k := range keys {
		switch v := args[k].(type) {
		case nil:
			continue
		case float64:
			if v != float64(int64(v)) {
				return nil, fmt.Errorf("%s: %v is not a whole number", k, v)
			}
			x := int64(v)
			return &x, nil
		case int:
			x := int64(v)
			return &x, nil
		case int64:
			x := v
			return &x, nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %q is not a whole number", k, v)
			}
			return &n, nil
		default:
			return nil, fmt.Errorf("%s: unexpected type %T", k, v)
		}
	}
	return nil, nil
}

// ParseRoomFilter reads the legacy "hotel_id:1,room_type:single,max_price:200"
// form. Unknown keys and unparsable values are ignored.
func ParseRoomFilter(filters string) domain.RoomFilter {
	var f domain.RoomFilter
	for _, item := range strings.Split(filters, ",") {
		key, value, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "hotel_id":
			if id, err := strconv.ParseInt(value, 10, 64); err == nil && id > 0 {
				f.HotelID = &id
			}
		case "room_type":
			f.RoomType = value
		case "max_price":
			if p, err := strconv.ParseFloat(value, 64); err == nil {
				f.MaxPrice = &p
			}
		}
	}
	return f
}
