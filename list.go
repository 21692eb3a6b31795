package argparse

import (
	"reflect"
	"strings"
)

// listSep separates the elements of a list value given in one token.
const listSep = ","

// splitList splits a list value on commas. Empty segments are dropped, so
// "1,2,3," has three elements and "" has none.
func splitList(s string) []string {
	elems := strings.Split(s, listSep)
	ret := make([]string, 0, len(elems))
	for _, v := range elems {
		if v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}

// joinList is the inverse of splitList for already formatted elements.
func joinList(elems []string) string {
	return strings.Join(elems, listSep)
}

// listOf converts every text with elem and returns a slice of sliceType.
// The failing text is returned with the error.
func listOf(
	sliceType reflect.Type, elem converter, texts []string,
) (_ any, badText string, _ error) {
	ret := reflect.MakeSlice(sliceType, len(texts), len(texts))
	for i, t := range texts {
		v, err := elem.parse(t)
		if err != nil {
			return nil, t, err
		}
		ret.Index(i).Set(reflect.ValueOf(v))
	}
	return ret.Interface(), "", nil
}

// appendList appends the elements of more to the slice held by prev.
func appendList(prev, more any) any {
	if prev == nil {
		return more
	}
	return reflect.AppendSlice(
		reflect.ValueOf(prev), reflect.ValueOf(more),
	).Interface()
}

// formatList formats every element of the slice v with elem.
func formatList(v any, elem converter) []string {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	ret := make([]string, rv.Len())
	for i := range ret {
		ret[i] = elem.format(rv.Index(i).Interface())
	}
	return ret
}
