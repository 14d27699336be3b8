package memory

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// matches reports whether doc satisfies filter. Filters have already been
// normalised through a BSON round trip, so nested documents are bson.M and
// arrays are primitive.A.
func matches(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		switch key {
		case "$or":
			if !anyMatches(doc, cond) {
				return false
			}
			continue
		case "$and":
			for _, sub := range asArray(cond) {
				if m, ok := asDoc(sub); ok && !matches(doc, m) {
					return false
				}
			}
			continue
		}

		value, present := lookupField(doc, key)
		if ops, ok := asDoc(cond); ok && isOperatorDoc(ops) {
			if !matchOperators(value, present, ops) {
				return false
			}
			continue
		}
		if re, ok := cond.(primitive.Regex); ok {
			if !matchRegex(value, re.Pattern, re.Options) {
				return false
			}
			continue
		}
		if !equalsOrContains(value, present, cond) {
			return false
		}
	}
	return true
}

func anyMatches(doc bson.M, cond any) bool {
	for _, sub := range asArray(cond) {
		if m, ok := asDoc(sub); ok && matches(doc, m) {
			return true
		}
	}
	return false
}

func matchOperators(value any, present bool, ops bson.M) bool {
	for op, arg := range ops {
		switch op {
		case "$eq":
			if !equalsOrContains(value, present, arg) {
				return false
			}
		case "$ne":
			if equalsOrContains(value, present, arg) {
				return false
			}
		case "$in":
			found := false
			for _, candidate := range asArray(arg) {
				if equalsOrContains(value, present, candidate) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "$nin":
			for _, candidate := range asArray(arg) {
				if equalsOrContains(value, present, candidate) {
					return false
				}
			}
		case "$gt", "$gte", "$lt", "$lte":
			if !present {
				return false
			}
			c, ok := compare(value, arg)
			if !ok {
				return false
			}
			switch op {
			case "$gt":
				if c <= 0 {
					return false
				}
			case "$gte":
				if c < 0 {
					return false
				}
			case "$lt":
				if c >= 0 {
					return false
				}
			case "$lte":
				if c > 0 {
					return false
				}
			}
		case "$exists":
			want, _ := arg.(bool)
			if present != want {
				return false
			}
		case "$regex":
			options, _ := ops["$options"].(string)
			pattern, _ := arg.(string)
			if re, ok := arg.(primitive.Regex); ok {
				pattern, options = re.Pattern, re.Options
			}
			if !matchRegex(value, pattern, options) {
				return false
			}
		case "$options":
		case "$size":
			n, ok := toFloat(arg)
			if !ok || len(asArray(value)) != int(n) || !isArray(value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// equalsOrContains follows MongoDB equality: an array field matches when any
// element is equal, and a null condition matches a missing field.
func equalsOrContains(value any, present bool, cond any) bool {
	if cond == nil {
		return !present || value == nil
	}
	if !present {
		return false
	}
	if isArray(value) && !isArray(cond) {
		for _, elem := range asArray(value) {
			if c, ok := compare(elem, cond); ok && c == 0 {
				return true
			}
		}
		return false
	}
	c, ok := compare(value, cond)
	return ok && c == 0
}

func matchRegex(value any, pattern, options string) bool {
	if strings.Contains(options, "i") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	if isArray(value) {
		for _, elem := range asArray(value) {
			if s, ok := elem.(string); ok && re.MatchString(s) {
				return true
			}
		}
		return false
	}
	s, ok := value.(string)
	return ok && re.MatchString(s)
}

// compare orders two scalar values. The second result is false when the
// values are of incomparable kinds.
func compare(a, b any) (int, bool) {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0, true
		case a == nil:
			return -1, true
		default:
			return 1, true
		}
	}

	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return cmpOrdered(fa, fb), true
	}
	if ta, ok := toTime(a); ok {
		tb, ok := toTime(b)
		if !ok {
			return 0, false
		}
		return cmpOrdered(ta.UnixNano(), tb.UnixNano()), true
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		default:
			return 1, true
		}
	}
	if fmt.Sprint(a) == fmt.Sprint(b) {
		return 0, true
	}
	return 0, false
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time(), true
	case time.Time:
		return t, true
	}
	return time.Time{}, false
}

// lookupField resolves a dotted path.
func lookupField(doc bson.M, path string) (any, bool) {
	var current any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := asDoc(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func lookup(doc bson.M, path string) any {
	v, _ := lookupField(doc, path)
	return v
}

func direction(v any) int {
	n, ok := toFloat(v)
	if ok && n < 0 {
		return -1
	}
	return 1
}

func isOperatorDoc(m bson.M) bool {
	if len(m) == 0 {
		return false
	}
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return false
		}
	}
	return true
}

func asDoc(v any) (bson.M, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, true
	case map[string]any:
		return bson.M(d), true
	case bson.D:
		return d.Map(), true
	}
	return nil, false
}

func isArray(v any) bool {
	switch v.(type) {
	case primitive.A, []any:
		return true
	}
	return false
}

func asArray(v any) []any {
	switch a := v.(type) {
	case primitive.A:
		return a
	case []any:
		return a
	}
	return nil
}
