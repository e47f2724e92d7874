package doc

// PropagateBreaks marks every group that transitively holds a hard line or
// a break marker as broken, and reports whether d itself holds one.
//
// A Break flag preset on a group does not propagate on its own; only forced
// content does.
func PropagateBreaks(d *Doc) bool {
	switch d.Kind() {
	case KindHardline, KindBreakParent:
		return true
	case KindConcat:
		// без короткого замыкания: каждая ветка должна быть обработана
		found := false
		for _, p := range d.parts {
			if PropagateBreaks(p) {
				found = true
			}
		}
		return found
	case KindIndent, KindLineSuffix:
		return PropagateBreaks(d.Contents())
	case KindGroup:
		if PropagateBreaks(d.Contents()) {
			d.Break = true
			return true
		}
	}
	return false
}
