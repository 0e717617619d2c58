package adslibrary

import "testing"

func TestParsePageRef(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		pageID     string
		searchName string
		wantErr    bool
	}{
		{
			name:   "library url with view_all_page_id",
			input:  "https://www.facebook.com/ads/library/?active_status=all&view_all_page_id=123456789",
			pageID: "123456789",
		},
		{
			name:   "profile url",
			input:  "https://www.facebook.com/profile.php?id=987654321",
			pageID: "987654321",
		},
		{
			name:   "bare numeric id",
			input:  "123456789",
			pageID: "123456789",
		},
		{
			name:       "facebook page url",
			input:      "https://www.facebook.com/acmetools",
			searchName: "acmetools",
		},
		{
			name:       "facebook page url with query",
			input:      "https://www.facebook.com/acmetools?ref=bookmarks",
			searchName: "acmetools",
		},
		{
			name:       "instagram url",
			input:      "https://www.instagram.com/acmetools/",
			searchName: "acmetools",
		},
		{
			name:       "bare name",
			input:      "acmetools",
			searchName: "acmetools",
		},
		{
			name:    "empty",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "reserved facebook path",
			input:   "https://www.facebook.com/watch/",
			wantErr: true,
		},
		{
			name:    "unsupported url",
			input:   "https://example.com/whatever",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParsePageRef(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.PageID != tt.pageID {
				t.Errorf("PageID = %q, want %q", ref.PageID, tt.pageID)
			}
			if ref.SearchName != tt.searchName {
				t.Errorf("SearchName = %q, want %q", ref.SearchName, tt.searchName)
			}
		})
	}
}
