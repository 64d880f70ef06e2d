package textproc

import (
	"regexp"
	"strings"

	"github.com/aquanets/aquacrawl/internal/domain"
)

// Entity type names as stored in processed documents.
const (
	EntitySpecies   = "species"
	EntityDisease   = "disease"
	EntityChemical  = "chemical"
	EntityParameter = "parameter"
	EntityLocation  = "location"
	EntityTechnique = "technique"
)

// entityPatterns maps each entity type to its recognition pattern. Patterns
// are alternations of known domain terms, matched case-insensitively.
var entityPatterns = map[string]*regexp.Regexp{
	EntitySpecies: regexp.MustCompile(`(?i)tôm thẻ chân trắng|tôm thẻ|tôm sú|tôm càng xanh|tôm hùm|` +
		`litopenaeus vannamei|penaeus monodon|macrobrachium rosenbergii`),
	EntityDisease: regexp.MustCompile(`(?i)hoại tử gan tụy( cấp( tính)?)?|đốm trắng|phân trắng|đầu vàng|` +
		`vi bào tử trùng|\bAHPND\b|\bEMS\b|\bEHP\b|\bWSSV\b|\bTPD\b|\bIHHNV\b`),
	EntityChemical: regexp.MustCompile(`(?i)men vi sinh|vi sinh vật|chế phẩm sinh học|\bchlorine\b|\bclo\b|` +
		`vôi(?: bột| nông nghiệp)?|\bformol\b|\biodine\b|\bprobiotic\b|khoáng chất|\bvitamin c\b`),
	EntityParameter: regexp.MustCompile(`(?i)\bpH\b|độ mặn|độ kiềm|oxy hòa tan|\bDO\b|nhiệt độ|độ trong|` +
		`\bNH3\b|\bH2S\b|\bNO2\b|amoniac?`),
	EntityLocation: regexp.MustCompile(`(?i)cà mau|bạc liêu|sóc trăng|kiên giang|bến tre|trà vinh|` +
		`quảng ninh|khánh hòa|ninh thuận|bình thuận|đồng bằng sông cửu long|\bĐBSCL\b`),
	EntityTechnique: regexp.MustCompile(`(?i)siêu thâm canh|thâm canh|bán thâm canh|quảng canh( cải tiến)?|` +
		`\bbiofloc\b|\bRAS\b|tuần hoàn nước|công nghệ cao|hai giai đoạn|ba giai đoạn|ao lót bạt`),
}

// entityOrder fixes the output order of entity types.
var entityOrder = []string{
	EntitySpecies, EntityDisease, EntityChemical,
	EntityParameter, EntityLocation, EntityTechnique,
}

// ExtractEntities finds domain entity mentions in the text. Matches are
// deduplicated per type case-insensitively, keeping the first surface form
// encountered, and returned grouped by type in a fixed order.
func ExtractEntities(text string) []domain.EntityMatch {
	var entities []domain.EntityMatch
	for _, entityType := range entityOrder {
		seen := make(map[string]bool)
		for _, match := range entityPatterns[entityType].FindAllString(text, -1) {
			key := strings.ToLower(strings.TrimSpace(match))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			entities = append(entities, domain.EntityMatch{
				Type:  entityType,
				Value: strings.TrimSpace(match),
			})
		}
	}

	return entities
}
