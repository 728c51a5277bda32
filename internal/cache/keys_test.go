package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "catalog",
			objectType:  "courses",
			identifier:  "all",
			paramsKey:   nil,
			expectedKey: "training:catalog:courses:all",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "catalog",
			objectType:  "courses",
			identifier:  "all",
			paramsKey:   []string{},
			expectedKey: "training:catalog:courses:all",
		},
		{
			name:        "with one paramsKey",
			serviceName: "catalog",
			objectType:  "course",
			identifier:  "C1",
			paramsKey:   []string{"v2"},
			expectedKey: "training:catalog:course:C1:v2",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "progress",
			objectType:  "employee",
			identifier:  "E1",
			paramsKey:   []string{"C1", "level-0"},
			expectedKey: "training:progress:employee:E1:C1_level-0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
