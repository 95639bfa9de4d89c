package listing

// Visibility policy: pure selectors over a fetched property list. The
// repository pre-filters rows for unauthenticated sessions, but that is a
// coarse, session-dependent safety net; these selectors are always applied
// in memory before anything reaches a public surface, because an admin
// session's fetch includes drafts and paused records.

// SelectPublic returns only published records, preserving input order.
func SelectPublic(props []*Property) []*Property {
	out := make([]*Property, 0, len(props))
	for _, p := range props {
		if p.IsPublished() {
			out = append(out, p)
		}
	}
	return out
}

// SelectFeatured returns published records flagged as featured.
func SelectFeatured(props []*Property) []*Property {
	out := make([]*Property, 0, len(props))
	for _, p := range props {
		if p.IsPublished() && p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// SelectOrdinary returns published, non-featured records. Featured and
// ordinary partition SelectPublic, so the main grid never duplicates a
// record already shown in the featured strip.
func SelectOrdinary(props []*Property) []*Property {
	out := make([]*Property, 0, len(props))
	for _, p := range props {
		if p.IsPublished() && !p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}
