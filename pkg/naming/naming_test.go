package naming

import "testing"

func TestEndpointName(t *testing.T) {
	tests := []struct {
		name   string
		method string
		url    string
		index  int
		want   string
	}{
		{"simple path", "GET", "https://api.test.com/users", 0, "get_users"},
		{"method lowercased", "POST", "https://api.test.com/users", 1, "post_users"},
		{"last segment wins", "GET", "https://api.test.com/v1/users/profile", 0, "get_profile"},
		{"extension stripped", "GET", "https://api.test.com/data.json", 0, "get_data"},
		{"hyphens become underscores", "GET", "https://api.test.com/user-profiles", 0, "get_user_profiles"},
		{"empty path falls back to index", "GET", "https://api.example.com/", 3, "get_request_3"},
		{"no path at all", "DELETE", "https://api.example.com", 7, "delete_request_7"},
		{"trailing slash", "GET", "https://api.test.com/users/", 0, "get_users"},
		{"numeric segment kept", "GET", "https://api.test.com/users/123", 0, "get_123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EndpointName(tt.method, tt.url, tt.index)
			if got != tt.want {
				t.Errorf("EndpointName(%q, %q, %d) = %q, want %q", tt.method, tt.url, tt.index, got, tt.want)
			}
		})
	}
}

func TestEndpointName_SpecialCharacters(t *testing.T) {
	// '@' and '#' and '.' must all disappear without leaving underscore runs.
	got := EndpointName("POST", "https://api.example.com/user@domain.com#section", 0)
	want := "post_user_domain"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	for i := 0; i+1 < len(got); i++ {
		if got[i] == '_' && got[i+1] == '_' {
			t.Errorf("name %q contains consecutive underscores", got)
		}
	}
}

func TestCleanSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"users", "users"},
		{"data.json", "data"},
		{"a?b=1", "a"},
		{"user name", "user_name"},
		{"a--b", "a_b"},
		{"__x__", "x"},
		{"###", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanSegment(tt.in); got != tt.want {
			t.Errorf("CleanSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModelName(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		index int
		want  string
	}{
		{"simple", "https://api.test.com/users", 0, "UsersModel"},
		{"underscored words", "https://api.test.com/user_profiles", 0, "UserProfilesModel"},
		{"hyphenated words", "https://api.test.com/user-profiles", 0, "UserProfilesModel"},
		{"extension stripped", "https://api.test.com/report.csv", 0, "ReportModel"},
		{"empty path falls back", "https://api.example.com/", 3, "Response3Model"},
		{"digit stem falls back", "https://api.test.com/users/123", 5, "Response5Model"},
		{"uppercase segment normalized", "https://api.test.com/USERS", 0, "UsersModel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelName(tt.url, tt.index); got != tt.want {
				t.Errorf("ModelName(%q, %d) = %q, want %q", tt.url, tt.index, got, tt.want)
			}
		})
	}
}

func TestSanitizeField(t *testing.T) {
	reserved := ReservedSet([]string{"type", "func"})

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"content-type", "content_type"},
		{"a.b c", "a_b_c"},
		{"1st", "_1st"},
		{"type", "type_"},
		{"TYPE", "TYPE_"},
		{"func", "func_"},
		{"not_reserved", "not_reserved"},
	}

	for _, tt := range tests {
		if got := SanitizeField(tt.in, reserved); got != tt.want {
			t.Errorf("SanitizeField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
