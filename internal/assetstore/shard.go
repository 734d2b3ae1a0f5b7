package assetstore

import (
	"fmt"
	"path/filepath"

	"github.com/imageimprov/photogame-api/internal/gameid"
)

// ShardPath derives the three-level directory path for an identifier from
// bit slices of its time fields. Only the time fields participate, never the
// clock-sequence or node bits, so temporally adjacent uploads land in the
// same leaf directory. Each level spans 10 bits (~1000 entries), giving
// roughly 10^9 files under the store root before leaves roll over.
//
// The bit layout is load-bearing: existing stores were laid out with it and
// any change orphans every file already on disk.
func ShardPath(id gameid.ID) string {
	timeLow := id.TimeLow()
	timeMid := uint32(id.TimeMid())

	// dir1: top 3 bits of time_low in the low positions, low 7 bits of
	// time_mid above them.
	dir1 := ((timeLow >> 29) & 0x7) | ((timeMid << 3) & 0x3F8)
	dir2 := (timeMid >> 3) & 0x3FF
	dir3 := (timeMid >> 13) & 0x3FF

	return filepath.Join(
		fmt.Sprintf("%03d", dir3),
		fmt.Sprintf("%03d", dir2),
		fmt.Sprintf("%03d", dir1),
	)
}
