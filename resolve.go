package libdoc

import (
	"context"
	"strconv"
	"strings"
)

// ResolveDocument finds a document in library by identifier. A numeric
// identifier is tried as a document ID first; then the identifier is matched
// against paths exactly and finally against titles ignoring case. A miss at
// one step falls through to the next. Returns ENOTFOUND if nothing matches.
func ResolveDocument(ctx context.Context, lookup DocumentLookup, library, identifier string) (*Document, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, Errorf(EINVALID, "document identifier required")
	}

	if isDigits(identifier) {
		if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
			doc, err := lookup.FindDocumentByID(ctx, library, id)
			if err == nil {
				return doc, nil
			} else if ErrorCode(err) != ENOTFOUND {
				return nil, err
			}
		}
	}

	doc, err := lookup.FindDocumentByPath(ctx, library, identifier)
	if err == nil {
		return doc, nil
	} else if ErrorCode(err) != ENOTFOUND {
		return nil, err
	}

	doc, err = lookup.FindDocumentByTitle(ctx, library, identifier)
	if err == nil {
		return doc, nil
	} else if ErrorCode(err) != ENOTFOUND {
		return nil, err
	}

	return nil, Errorf(ENOTFOUND, "document %q not found in library %q", identifier, library)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
