package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var seedManifests = []string{
	"",
	"[package]\nname = \"app\"\nversion = \"0.1.0\"\n",
	"[dependencies]\ntauri = { version = \"1\", features = [\"api-all\"] }\n",
	"[dependencies.tauri]\r\nversion = '1' # pinned\r\nfeatures = [\r\n  \"menu\",\r\n]\r\n",
	"\xef\xbb\xbf[workspace]\nmembers = [\"a\", 'b']\n",
	"[[bin]]\nname = \"x\"\n[[bin]]\nname = \"y\"\n",
	"a.b.\"c d\" = 1979-05-27T07:32:00Z\nf = -inf\ns = \"\"\"\nml\\\n  text\"\"\"\n",
	"x = { a = [1, [2, 3]], b = { c = true } }\n",
	"[a\nb = \"x\n= 1\n{ = }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range seedManifests {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
