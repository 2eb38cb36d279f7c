package itemid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Class identifiers of the built-in special folders.
var (
	CLSIDShellDesktop  = uuid.MustParse("00021400-0000-0000-C000-000000000046")
	CLSIDMyComputer    = uuid.MustParse("20D04FE0-3AEA-1069-A2D8-08002B30309D")
	CLSIDMyDocuments   = uuid.MustParse("450D8FBA-AD25-11D0-98A8-0800361B1103")
	CLSIDInternet      = uuid.MustParse("871C5380-42A0-1069-A2EA-08002B30309D")
	CLSIDControlPanel  = uuid.MustParse("21EC2020-3AEA-1069-A2DD-08002B30309D")
	CLSIDPrinters      = uuid.MustParse("2227A280-3AEA-1069-A2DE-08002B30309D")
	CLSIDNetworkPlaces = uuid.MustParse("208D2C60-3AEA-1069-A2D7-08002B30309D")
	CLSIDRecycleBin    = uuid.MustParse("645FF040-5081-101B-9F08-00AA002F954E")
)

const guidSize = 16

// putGUID stores id in the mixed-endian GUID layout: the first three fields
// little-endian, the last eight bytes as-is.
func putGUID(dst []byte, id uuid.UUID) {
	dst[0], dst[1], dst[2], dst[3] = id[3], id[2], id[1], id[0]
	dst[4], dst[5] = id[5], id[4]
	dst[6], dst[7] = id[7], id[6]
	copy(dst[8:guidSize], id[8:])
}

// readGUID is the inverse of putGUID.
func readGUID(src []byte) uuid.UUID {
	var id uuid.UUID

	id[0], id[1], id[2], id[3] = src[3], src[2], src[1], src[0]
	id[4], id[5] = src[5], src[4]
	id[6], id[7] = src[7], src[6]
	copy(id[8:], src[8:guidSize])

	return id
}

// FormatGUID returns id in the braced upper-case registry form,
// e.g. {20D04FE0-3AEA-1069-A2D8-08002B30309D}.
func FormatGUID(id uuid.UUID) string {
	return "{" + strings.ToUpper(id.String()) + "}"
}

// ParseGUID parses a GUID with or without braces.
func ParseGUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("itemid: parsing GUID %q: %w", s, err)
	}

	return id, nil
}
