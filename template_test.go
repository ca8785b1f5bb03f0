package fable

import (
	"testing"
)

func TestNewTemplateMessage(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		tmpl    string
		vars    map[string]any
		want    string
		wantErr bool
	}{
		{
			name: "renders variables",
			role: RoleSystem,
			tmpl: "Category: {{.category}}.",
			vars: map[string]any{"category": "friendship"},
			want: "Category: friendship.",
		},
		{
			name: "no variables passes template through",
			role: RoleSystem,
			tmpl: "Return ONLY the category name.",
			want: "Return ONLY the category name.",
		},
		{
			name:    "missing key is an error",
			role:    RoleSystem,
			tmpl:    "Category: {{.category}}.",
			vars:    map[string]any{"other": "x"},
			wantErr: true,
		},
		{
			name:    "unknown role is an error",
			role:    Role("narrator"),
			tmpl:    "hello",
			vars:    map[string]any{"x": "y"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewTemplateMessage(tt.role, tt.tmpl, tt.vars)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewTemplateMessage() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTemplateMessage() error = %v", err)
			}
			if msg.Role != tt.role {
				t.Errorf("Message.Role = %v, want %v", msg.Role, tt.role)
			}
			if msg.Text != tt.want {
				t.Errorf("Message.Text = %q, want %q", msg.Text, tt.want)
			}
		})
	}
}
