// Package countries is the static country reference list used by location
// fields and filter dropdowns.
package countries

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Country is an ISO 3166-1 alpha-2 code with its English name.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ISO 3166-1 alpha-2 assigned codes.
const isoCodes = "AD AE AF AG AI AL AM AO AQ AR AS AT AU AW AX AZ BA BB BD BE BF BG BH BI BJ BL BM BN BO BQ BR BS BT BV BW BY BZ " +
	"CA CC CD CF CG CH CI CK CL CM CN CO CR CU CV CW CX CY CZ DE DJ DK DM DO DZ EC EE EG EH ER ES ET FI FJ FK FM FO FR " +
	"GA GB GD GE GF GG GH GI GL GM GN GP GQ GR GS GT GU GW GY HK HM HN HR HT HU ID IE IL IM IN IO IQ IR IS IT JE JM JO JP " +
	"KE KG KH KI KM KN KP KR KW KY KZ LA LB LC LI LK LR LS LT LU LV LY MA MC MD ME MF MG MH MK ML MM MN MO MP MQ MR MS MT " +
	"MU MV MW MX MY MZ NA NC NE NF NG NI NL NO NP NR NU NZ OM PA PE PF PG PH PK PL PM PN PR PS PT PW PY QA RE RO RS RU RW " +
	"SA SB SC SD SE SG SH SI SJ SK SL SM SN SO SR SS ST SV SX SY SZ TC TD TF TG TH TJ TK TL TM TN TO TR TT TV TW TZ UA UG " +
	"UM US UY UZ VA VC VE VG VI VN VU WF WS YE YT ZA ZM ZW"

var overrides = map[string]string{
	"TW": "Taiwan",
}

var (
	loadOnce sync.Once
	all      []Country
	byCode   map[string]string
)

func load() {
	namer := display.English.Regions()
	codes := strings.Fields(isoCodes)
	all = make([]Country, 0, len(codes))
	byCode = make(map[string]string, len(codes))
	for _, code := range codes {
		name, ok := overrides[code]
		if !ok {
			region, err := language.ParseRegion(code)
			if err != nil {
				continue
			}
			name = namer.Name(region)
		}
		if name == "" {
			name = code
		}
		all = append(all, Country{Code: code, Name: name})
		byCode[code] = name
	}

	col := collate.New(language.English, collate.Loose)
	sort.SliceStable(all, func(i, j int) bool {
		return col.CompareString(all[i].Name, all[j].Name) < 0
	})
}

// All returns every country sorted by English name. The slice is a copy.
func All() []Country {
	loadOnce.Do(load)
	out := make([]Country, len(all))
	copy(out, all)
	return out
}

// Name returns the display name for a code, case-insensitively.
func Name(code string) (string, bool) {
	loadOnce.Do(load)
	name, ok := byCode[Normalize(code)]
	return name, ok
}

// Valid reports whether code is a known alpha-2 code.
func Valid(code string) bool {
	_, ok := Name(code)
	return ok
}

// Normalize upper-cases and trims a code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
