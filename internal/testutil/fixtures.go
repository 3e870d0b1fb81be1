package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Fixtures содержит общие types.xml документы для тестов.
var Fixtures = struct {
	// Base: Apple (nominal 10) и Ammo_9x19.
	Base string
	// Extension переопределяет Apple (nominal 5) и добавляет Banana (nominal 3).
	Extension string
	// Broken: well-formed XML, но поля не парсятся.
	Broken string
}{
	Base: `<?xml version="1.0" encoding="UTF-8" standalone="yes" ?>
<types>
    <type name="Apple">
        <nominal>10</nominal>
        <lifetime>3600</lifetime>
        <restock>0</restock>
        <min>5</min>
        <quantmin>-1</quantmin>
        <quantmax>-1</quantmax>
        <cost>100</cost>
        <flags count_in_cargo="0" count_in_hoarder="0" count_in_map="1" count_in_player="0" crafted="0" deloot="0"/>
        <category name="food"/>
        <usage name="Farm"/>
        <value name="Tier1"/>
    </type>
    <type name="Ammo_9x19">
        <nominal>30</nominal>
        <lifetime>7200</lifetime>
        <min>15</min>
        <quantmax>0</quantmax>
        <flags count_in_cargo="0" count_in_hoarder="0" count_in_map="1" count_in_player="0" crafted="0" deloot="0"/>
        <category name="weapons"/>
        <usage name="Police"/>
        <usage name="Military"/>
    </type>
</types>
`,
	Extension: `<types>
    <type name="Banana">
        <nominal>3</nominal>
        <lifetime>3600</lifetime>
        <min>1</min>
        <quantmax>0</quantmax>
        <flags count_in_cargo="0" count_in_hoarder="0" count_in_map="1" count_in_player="0" crafted="0" deloot="0"/>
    </type>
    <type name="Apple">
        <nominal>5</nominal>
        <lifetime>3600</lifetime>
        <min>2</min>
        <quantmax>0</quantmax>
        <flags count_in_cargo="0" count_in_hoarder="0" count_in_map="1" count_in_player="0" crafted="0" deloot="0"/>
    </type>
</types>
`,
	Broken: `<types>
    <type name="Apple">
        <nominal>ten</nominal>
        <lifetime>soon</lifetime>
        <min>5</min>
        <flags count_in_cargo="2" count_in_map="abc"/>
        <usage/>
        <usage name="Farm"/>
    </type>
</types>
`,
}

// WriteFile записывает content в файл во временной директории и возвращает путь.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
