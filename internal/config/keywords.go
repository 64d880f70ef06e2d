package config

// KeywordSets are the data tables driving relevance classification. They are
// decoupled from any specific site and can be overridden in the config file.
type KeywordSets struct {
	// URLTokens are literal tokens whose presence in a URL accepts it outright.
	URLTokens []string `mapstructure:"url_tokens" yaml:"url_tokens"`
	// Topic keywords identify the target species and its trade names.
	Topic []string `mapstructure:"topic" yaml:"topic"`
	// Disease keywords identify pathology coverage.
	Disease []string `mapstructure:"disease" yaml:"disease"`
	// Technique keywords identify husbandry and farming technique coverage.
	Technique []string `mapstructure:"technique" yaml:"technique"`
	// Exclude keywords mark adjacent but off-topic coverage.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// Default keyword tables for shrimp aquaculture coverage. Vietnamese terms
// dominate because the default target site publishes in Vietnamese.
var (
	defaultURLTokens = []string{"tom", "tôm", "shrimp", "prawn"}

	defaultTopicKeywords = []string{
		"tôm", "tôm sú", "tôm thẻ", "tôm càng xanh", "tôm hùm", "tôm hùm nước ngọt",
		"tôm he", "tôm chân trắng", "penaeus", "litopenaeus", "vannamei", "monodon",
		"shrimp", "prawn", "tiger shrimp", "white leg shrimp", "lobster",
		"tôm giống", "ấu trùng tôm", "post-larvae", "nauplii",
	}

	defaultDiseaseKeywords = []string{
		"bệnh đốm trắng", "bệnh đầu vàng", "hoại tử gan tụy", "đốm trắng", "EMS",
		"WSSV", "white spot syndrome", "hepatopancreatic necrosis", "early mortality syndrome",
		"bệnh phân trắng", "bệnh mềm vỏ", "bệnh đỏ thân", "bệnh đen mang", "vibrio",
		"vi khuẩn", "virus", "nấm", "ký sinh trùng", "nhiễm khuẩn", "dịch bệnh",
	}

	defaultTechniqueKeywords = []string{
		"nuôi tôm", "ao nuôi", "nuôi thâm canh", "nuôi bán thâm canh", "nuôi quảng canh",
		"biofloc", "RAS", "recirculating aquaculture", "tuần hoàn nước", "hệ thống lọc",
		"ao lót bạt", "ao đất", "thức ăn tôm", "cho tôm ăn", "quy trình nuôi", "kỹ thuật nuôi",
		"cải tạo ao", "xử lý nước", "men vi sinh", "probiotic", "chất xử lý nước",
	}

	defaultExcludeKeywords = []string{
		"xuất khẩu hàng hóa", "tàu biển", "đánh bắt", "khai thác", "hải sản",
		"cảng cá", "cá ngừ", "cá tra", "cá basa", "ngao", "nghêu", "sò", "ốc",
		"rong biển", "tảo", "logistics", "vận chuyển hàng hóa", "thuế xuất nhập khẩu",
	}
)

// DefaultKeywords returns the built-in keyword tables.
func DefaultKeywords() KeywordSets {
	var k KeywordSets
	k.applyDefaults()
	return k
}

// applyDefaults fills empty keyword tables with the built-in sets. A table
// explicitly set in the config file wins over the defaults.
func (k *KeywordSets) applyDefaults() {
	if len(k.URLTokens) == 0 {
		k.URLTokens = defaultURLTokens
	}
	if len(k.Topic) == 0 {
		k.Topic = defaultTopicKeywords
	}
	if len(k.Disease) == 0 {
		k.Disease = defaultDiseaseKeywords
	}
	if len(k.Technique) == 0 {
		k.Technique = defaultTechniqueKeywords
	}
	if len(k.Exclude) == 0 {
		k.Exclude = defaultExcludeKeywords
	}
}
