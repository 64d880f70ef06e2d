package textproc_test

import (
	"testing"

	"github.com/aquanets/aquacrawl/internal/textproc"
)

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty text",
			in:   "",
			want: textproc.LanguageUnknown,
		},
		{
			name: "whitespace only",
			in:   "   \n  ",
			want: textproc.LanguageUnknown,
		},
		{
			name: "long vietnamese paragraph",
			in: "Ngành nuôi tôm nước lợ của Việt Nam tiếp tục tăng trưởng mạnh " +
				"trong năm nay nhờ giá xuất khẩu ổn định và nhu cầu thị trường quốc tế " +
				"tăng cao, đặc biệt tại các thị trường lớn như Hoa Kỳ và Nhật Bản.",
			want: "vi",
		},
		{
			name: "short vietnamese voted by markers",
			in:   "Giá của tôm",
			want: "vi",
		},
		{
			name: "short ascii english",
			in:   "Shrimp prices",
			want: "en",
		},
		{
			name: "long english paragraph",
			in: "Global shrimp production continues to expand as farmers adopt " +
				"intensive recirculating systems and improved disease management " +
				"practices across the major producing regions of Southeast Asia.",
			want: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := textproc.DetectLanguage(tt.in); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
