package frameworks

// Registry is the fixed, ordered set of known frameworks. Order is the final
// tie-break of the relevance resolver.
var Registry = []Framework{
	{
		ID:           "next",
		Name:         "Next.js",
		Category:     CategoryStaticSiteGenerator,
		Dependencies: []string{"next"},
		ConfigFiles:  []string{"next.config.js", "next.config.mjs", "next.config.cjs", "next.config.ts"},
		BuildCommand: "next build",
		DevCommand:   "next dev",
		PublishDir:   ".next",
		Port:         3000,
	},
	{
		ID:           "gatsby",
		Name:         "Gatsby",
		Category:     CategoryStaticSiteGenerator,
		Dependencies: []string{"gatsby"},
		ConfigFiles:  []string{"gatsby-config.js", "gatsby-config.mjs", "gatsby-config.ts"},
		BuildCommand: "gatsby build",
		DevCommand:   "gatsby develop",
		PublishDir:   "public",
		Port:         8000,
	},
	{
		ID:           "astro",
		Name:         "Astro",
		Category:     CategoryStaticSiteGenerator,
		Dependencies: []string{"astro"},
		ConfigFiles:  []string{"astro.config.mjs", "astro.config.js", "astro.config.cjs", "astro.config.ts"},
		BuildCommand: "astro build",
		DevCommand:   "astro dev",
		PublishDir:   "dist",
		Port:         4321,
	},
	{
		ID:           "nuxt",
		Name:         "Nuxt",
		Category:     CategoryStaticSiteGenerator,
		Dependencies: []string{"nuxt", "nuxt3", "nuxt-edge"},
		ConfigFiles:  []string{"nuxt.config.js", "nuxt.config.mjs", "nuxt.config.ts"},
		BuildCommand: "nuxt build",
		DevCommand:   "nuxt dev",
		PublishDir:   ".output/public",
		Port:         3000,
	},
	{
		ID:           "remix",
		Name:         "Remix",
		Category:     CategoryFrontendFramework,
		Dependencies: []string{"@remix-run/react", "@remix-run/dev"},
		ConfigFiles:  []string{"remix.config.js", "remix.config.mjs"},
		BuildCommand: "remix build",
		DevCommand:   "remix dev",
		PublishDir:   "public",
		Port:         3000,
	},
	{
		ID:           "sveltekit",
		Name:         "SvelteKit",
		Category:     CategoryFrontendFramework,
		Dependencies: []string{"@sveltejs/kit"},
		ConfigFiles:  []string{"svelte.config.js", "svelte.config.mjs"},
		BuildCommand: "vite build",
		DevCommand:   "vite dev",
		PublishDir:   "build",
		Port:         5173,
	},
	{
		ID:           "docusaurus",
		Name:         "Docusaurus",
		Category:     CategoryStaticSiteGenerator,
		Dependencies: []string{"@docusaurus/core"},
		ConfigFiles:  []string{"docusaurus.config.js", "docusaurus.config.mjs", "docusaurus.config.ts"},
		BuildCommand: "docusaurus build",
		DevCommand:   "docusaurus start",
		PublishDir:   "build",
		Port:         3000,
	},
	{
		ID:           "eleventy",
		Name:         "Eleventy",
		Category:     CategoryStaticSiteGenerator,
		Dependencies: []string{"@11ty/eleventy"},
		ConfigFiles:  []string{".eleventy.js", "eleventy.config.js", "eleventy.config.mjs", "eleventy.config.cjs"},
		BuildCommand: "eleventy",
		DevCommand:   "eleventy --serve",
		PublishDir:   "_site",
		Port:         8080,
	},
	{
		ID:           "hugo",
		Name:         "Hugo",
		Category:     CategoryStaticSiteGenerator,
		ConfigFiles:  []string{"hugo.toml", "hugo.yaml", "hugo.json"},
		BuildCommand: "hugo",
		DevCommand:   "hugo server -w",
		PublishDir:   "public",
		Port:         1313,
	},
	{
		ID:           "jekyll",
		Name:         "Jekyll",
		Category:     CategoryStaticSiteGenerator,
		ConfigFiles:  []string{"_config.yml", "_config.yaml", "_config.toml"},
		BuildCommand: "bundle exec jekyll build",
		DevCommand:   "bundle exec jekyll serve -w",
		PublishDir:   "_site",
		Port:         4000,
	},
	{
		ID:           "hexo",
		Name:         "Hexo",
		Category:     CategoryStaticSiteGenerator,
		Dependencies: []string{"hexo"},
		ConfigFiles:  []string{"_config.yml"},
		BuildCommand: "hexo generate",
		DevCommand:   "hexo server",
		PublishDir:   "public",
		Port:         4000,
	},
	{
		ID:           "vuepress",
		Name:         "VuePress",
		Category:     CategoryStaticSiteGenerator,
		Dependencies: []string{"vuepress"},
		ConfigFiles:  []string{".vuepress/config.js", ".vuepress/config.ts", "docs/.vuepress/config.js", "docs/.vuepress/config.ts"},
		BuildCommand: "vuepress build",
		DevCommand:   "vuepress dev",
		PublishDir:   ".vuepress/dist",
		Port:         8080,
	},
	{
		ID:           "angular",
		Name:         "Angular",
		Category:     CategoryFrontendFramework,
		Dependencies: []string{"@angular/cli"},
		ConfigFiles:  []string{"angular.json"},
		BuildCommand: "ng build",
		DevCommand:   "ng serve",
		PublishDir:   "dist",
		Port:         4200,
	},
	{
		ID:           "create-react-app",
		Name:         "Create React App",
		Category:     CategoryFrontendFramework,
		Dependencies: []string{"react-scripts"},
		BuildCommand: "react-scripts build",
		DevCommand:   "react-scripts start",
		PublishDir:   "build",
		Port:         3000,
	},
	{
		ID:           "vue",
		Name:         "Vue.js",
		Category:     CategoryFrontendFramework,
		Dependencies: []string{"@vue/cli-service"},
		ConfigFiles:  []string{"vue.config.js", "vue.config.mjs"},
		BuildCommand: "vue-cli-service build",
		DevCommand:   "vue-cli-service serve",
		PublishDir:   "dist",
		Port:         8080,
	},
	{
		ID:           "solid-start",
		Name:         "SolidStart",
		Category:     CategoryFrontendFramework,
		Dependencies: []string{"@solidjs/start"},
		ConfigFiles:  []string{"app.config.ts", "app.config.js"},
		BuildCommand: "vinxi build",
		DevCommand:   "vinxi dev",
		PublishDir:   ".output/public",
		Port:         3000,
	},
	{
		ID:           "vite",
		Name:         "Vite",
		Category:     CategoryBuildTool,
		Dependencies: []string{"vite"},
		// frameworks that drive vite themselves own the build
		ExcludedDependencies: []string{"@sveltejs/kit", "@remix-run/dev", "astro", "nuxt", "@solidjs/start", "vuepress"},
		ConfigFiles:          []string{"vite.config.js", "vite.config.mjs", "vite.config.cjs", "vite.config.ts"},
		BuildCommand:         "vite build",
		DevCommand:           "vite",
		PublishDir:           "dist",
		Port:                 5173,
	},
	{
		ID:           "parcel",
		Name:         "Parcel",
		Category:     CategoryBuildTool,
		Dependencies: []string{"parcel", "parcel-bundler"},
		ConfigFiles:  []string{".parcelrc"},
		BuildCommand: "parcel build",
		DevCommand:   "parcel",
		PublishDir:   "dist",
		Port:         1234,
	},
	{
		ID:           "webpack",
		Name:         "webpack",
		Category:     CategoryBuildTool,
		Dependencies: []string{"webpack"},
		ConfigFiles:  []string{"webpack.config.js", "webpack.config.mjs", "webpack.config.ts"},
		BuildCommand: "webpack",
		DevCommand:   "webpack serve",
		PublishDir:   "dist",
		Port:         8080,
	},
	{
		ID:           "grunt",
		Name:         "Grunt",
		Category:     CategoryBuildTool,
		Dependencies: []string{"grunt"},
		ConfigFiles:  []string{"Gruntfile.js", "Gruntfile.coffee"},
		BuildCommand: "grunt build",
		DevCommand:   "grunt serve",
		PublishDir:   "dist",
		Port:         8000,
	},
	{
		ID:           "gulp",
		Name:         "gulp",
		Category:     CategoryBuildTool,
		Dependencies: []string{"gulp"},
		ConfigFiles:  []string{"gulpfile.js", "gulpfile.mjs", "gulpfile.ts"},
		BuildCommand: "gulp build",
		DevCommand:   "gulp serve",
		PublishDir:   "dist",
		Port:         3000,
	},
	{
		ID:           "nestjs",
		Name:         "NestJS",
		Category:     CategoryBackend,
		Dependencies: []string{"@nestjs/core"},
		ConfigFiles:  []string{"nest-cli.json"},
		BuildCommand: "nest build",
		DevCommand:   "nest start --watch",
		PublishDir:   "dist",
		Port:         3000,
	},
	{
		ID:           "express",
		Name:         "Express.js",
		Category:     CategoryBackend,
		Dependencies: []string{"express"},
		Port:         3000,
	},
	{
		ID:           "fastify",
		Name:         "Fastify",
		Category:     CategoryBackend,
		Dependencies: []string{"fastify"},
		Port:         3000,
	},
}

// Lookup returns the registered framework with the given id
func Lookup(id string) (Framework, bool) {
	for _, fw := range Registry {
		if fw.ID == id {
			return fw, true
		}
	}
	return Framework{}, false
}
