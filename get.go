package ras

// Get resolves list, item and sub-item indices to one value of doc.
func Get(doc *Document, list string, item, subItem int) (Value, error) {
	return doc.Get(list, item, subItem)
}

// Get resolves list, item and sub-item indices to one value. Indices are
// 0-based and strict: there is no clamping and no negative wraparound.
// Failures are *LookupError values wrapping ErrUnknownList,
// ErrItemIndexOutOfRange or ErrSubItemIndexOutOfRange.
func (d *Document) Get(list string, item, subItem int) (Value, error) {
	l, ok := d.List(list)
	if !ok {
		return nil, &LookupError{List: list, Item: item, SubItem: subItem, Err: ErrUnknownList}
	}

	if item < 0 || item >= len(l.records) {
		return nil, &LookupError{List: list, Item: item, SubItem: subItem, Len: len(l.records), Err: ErrItemIndexOutOfRange}
	}

	rec := l.records[item]
	if subItem < 0 || subItem >= len(rec.fields) {
		return nil, &LookupError{List: list, Item: item, SubItem: subItem, Len: len(rec.fields), Err: ErrSubItemIndexOutOfRange}
	}

	return rec.fields[subItem], nil
}
