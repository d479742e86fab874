package template

// builtins is the compiled-in descriptor table, used when the remote catalog
// is unreachable and as the base a fetched artifact merges over. Prompts and
// transforms here are safe defaults; the artifact inside each template is
// authoritative once downloaded.
var builtins = []Descriptor{
	{
		ID:          "react-vite",
		Slug:        "react-vite",
		Name:        "React + Vite",
		Description: "React SPA with Vite, TypeScript, and Vitest",
		Stack:       "react",
		Source:      Source{Repo: "https://github.com/stencil-labs/template-react-vite"},
		Tags:        []string{"react", "vite", "spa"},
		Transforms: []TransformSpec{
			{Kind: "builtin", Name: TransformUpdatePackageJSON},
			{Kind: "builtin", Name: TransformUpdateReadme},
		},
	},
	{
		ID:          "next-app",
		Slug:        "next-app",
		Name:        "Next.js App",
		Description: "Next.js application with the app router and TypeScript",
		Stack:       "next",
		Source:      Source{Repo: "https://github.com/stencil-labs/template-next-app"},
		Tags:        []string{"next", "react", "ssr"},
		Transforms: []TransformSpec{
			{Kind: "builtin", Name: TransformUpdatePackageJSON},
			{Kind: "builtin", Name: TransformGenerateEnvFile},
			{Kind: "builtin", Name: TransformUpdateReadme},
		},
	},
	{
		ID:          "node-api",
		Slug:        "node-api",
		Name:        "Node API",
		Description: "Express API server with TypeScript and a test harness",
		Stack:       "node",
		Source:      Source{Repo: "https://github.com/stencil-labs/template-node-api"},
		Tags:        []string{"node", "express", "api"},
		Transforms: []TransformSpec{
			{Kind: "builtin", Name: TransformUpdatePackageJSON},
			{Kind: "builtin", Name: TransformGenerateEnvFile},
			{Kind: "builtin", Name: TransformUpdateReadme},
		},
	},
	{
		ID:          "ts-library",
		Slug:        "ts-library",
		Name:        "TypeScript Library",
		Description: "Publishable TypeScript library with tsup and Vitest",
		Stack:       "library",
		Source:      Source{Repo: "https://github.com/stencil-labs/template-ts-library"},
		Tags:        []string{"library", "typescript"},
		Transforms: []TransformSpec{
			{Kind: "builtin", Name: TransformUpdatePackageJSON},
			{Kind: "builtin", Name: TransformUpdateReadme},
		},
	},
}

// Builtins returns a copy of the compiled-in descriptor list.
func Builtins() []Descriptor {
	out := make([]Descriptor, len(builtins))
	copy(out, builtins)
	return out
}

// Lookup finds a built-in descriptor by id or slug.
func Lookup(idOrSlug string) (Descriptor, bool) {
	for _, d := range builtins {
		if d.ID == idOrSlug || d.Slug == idOrSlug {
			return d, true
		}
	}
	return Descriptor{}, false
}
