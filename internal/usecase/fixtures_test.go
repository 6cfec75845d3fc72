package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const bayern = "Bayern Munich"

func matchJSON(id, home, away, result, datetime string) string {
	return fmt.Sprintf(`{"id":%q,"isResult":true,"h":{"id":"1","title":%q,"short_title":"H"},"a":{"id":"2","title":%q,"short_title":"A"},"goals":{"h":"2","a":"1"},"xG":{"h":"1.75","a":"0.42"},"datetime":%q,"result":%q}`,
		id, home, away, datetime, result)
}

func writeDocument(t *testing.T, dir, name string, records ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	body := "[" + strings.Join(records, ",") + "]"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
