package skills

// aliasGroups maps a canonical skill term to its common variants. Keys and
// variants are stored in normalized form; the table is read-only after
// package initialization.
var aliasGroups = map[string][]string{
	"javascript":       {"js", "java script", "ecmascript"},
	"typescript":       {"ts"},
	"node js":          {"node", "nodejs"},
	"python":           {"py", "python3"},
	"postgresql":       {"postgres", "psql"},
	"mysql":            {"my sql"},
	"mongodb":          {"mongo"},
	"elasticsearch":    {"elastic search", "elastic"},
	"kubernetes":       {"k8s", "kube"},
	"docker":           {"docker containers"},
	"go":               {"golang"},
	"c#":               {"csharp", "c sharp"},
	"c++":              {"cpp", "cplusplus"},
	"aws":              {"amazon web services"},
	"gcp":              {"google cloud platform", "google cloud"},
	"azure":            {"microsoft azure"},
	"machine learning": {"ml"},
	"react":            {"reactjs", "react js"},
	"vue":              {"vuejs", "vue js"},
	"angular":          {"angularjs", "angular js"},
	"html":             {"html5"},
	"css":              {"css3"},
	"rails":            {"ruby on rails", "ror"},
	"dotnet":           {"net", "net core", "dotnet core"},
	"terraform":        {"tf"},
	"ci cd":            {"cicd", "ci cd pipelines"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string, len(aliasGroups)*3)
	for canonical, variants := range aliasGroups {
		idx[canonical] = canonical
		for _, variant := range variants {
			idx[variant] = canonical
		}
	}
	return idx
}
