// Package operations implements the concrete SEO checks and declares the
// Context → Factor → Operation tree the optimiser evaluates. The tree is an
// explicit registry resolved through constructor injection; adding a check
// means adding a constructor to a factor's list, nothing reflective.
package operations

import (
	"github.com/beyondseo/backend/content"
	"github.com/beyondseo/backend/external"
	"github.com/beyondseo/backend/optimiser"
)

// Deps carries every collaborator an operation constructor may need.
type Deps struct {
	Provider      content.Provider
	PageSpeed     external.PageSpeedClient
	SafeBrowsing  external.SafeBrowsingClient
	ContentUpdate external.ContentUpdateClient
}

// Constructor builds one operation from its spec and the shared deps.
type Constructor func(spec optimiser.OperationSpec, deps Deps) optimiser.Operation

// operationDecl pairs a spec with its constructor in the registry.
type operationDecl struct {
	spec  optimiser.OperationSpec
	build Constructor
}

// factorDecl declares one factor and its ordered operations.
type factorDecl struct {
	key        string
	name       string
	weight     float64
	operations []operationDecl
}

// contextDecl declares one context and its ordered factors.
type contextDecl struct {
	key     string
	name    string
	weight  float64
	factors []factorDecl
}

func provided(build func(optimiser.OperationSpec, content.Provider) optimiser.Operation) Constructor {
	return func(spec optimiser.OperationSpec, deps Deps) optimiser.Operation {
		return build(spec, deps.Provider)
	}
}

// defaultTree is the statically declared scoring tree. Declaration order is
// evaluation order and drives suggestion ordering in responses.
var defaultTree = []contextDecl{
	{
		key: "content_quality", name: "Content Quality", weight: 0.35,
		factors: []factorDecl{
			{
				key: "meta_tags", name: "Meta Tags", weight: 0.3,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "meta_title_length", Name: "Meta Title Length", Weight: 0.3},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewMetaTitleLengthCheck(s, p)
						}),
					},
					{
						spec: optimiser.OperationSpec{Key: "meta_title_quality", Name: "Meta Title Quality", Weight: 0.4},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewMetaTitleQualityCheck(s, p)
						}),
					},
					{
						spec: optimiser.OperationSpec{Key: "meta_description_length", Name: "Meta Description Length", Weight: 0.3},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewMetaDescriptionCheck(s, p)
						}),
					},
				},
			},
			{
				key: "readability", name: "Readability", weight: 0.35,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "readability", Name: "Readability", Weight: 1},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewReadabilityCheck(s, p)
						}),
					},
				},
			},
			{
				key: "heading_structure", name: "Heading Structure", weight: 0.15,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "heading_structure", Name: "Heading Structure", Weight: 1},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewHeadingStructureCheck(s, p)
						}),
					},
				},
			},
			{
				key: "alt_text_to_images", name: "Alt Text To Images", weight: 0.2,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "alt_text_presence", Name: "Alt Text Presence", Weight: 0.4},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewAltTextPresenceCheck(s, p)
						}),
					},
					{
						spec: optimiser.OperationSpec{Key: "alt_text_keyword", Name: "Alt Text Keyword Usage", Weight: 0.3},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewAltTextKeywordCheck(s, p)
						}),
					},
					{
						spec: optimiser.OperationSpec{Key: "alt_text_descriptiveness", Name: "Alt Text Descriptiveness", Weight: 0.3},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewAltTextDescriptivenessCheck(s, p)
						}),
					},
				},
			},
		},
	},
	{
		key: "keyword_optimisation", name: "Keyword Optimisation", weight: 0.3,
		factors: []factorDecl{
			{
				key: "keyword_placement", name: "Keyword Placement", weight: 0.6,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "keyword_distribution", Name: "Keyword Distribution", Weight: 1},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewKeywordPlacementCheck(s, p)
						}),
					},
				},
			},
			{
				key: "related_keywords", name: "Related Keywords", weight: 0.4,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "related_keywords", Name: "Related Keywords", Weight: 1},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewRelatedKeywordsCheck(s, p)
						}),
					},
				},
			},
		},
	},
	{
		key: "technical_seo", name: "Technical SEO", weight: 0.2,
		factors: []factorDecl{
			{
				key: "robots_txt", name: "Robots.txt", weight: 0.5,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "robots_txt_validation", Name: "Robots.txt Validation", Weight: 1},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewRobotsTxtValidationCheck(s, p)
						}),
					},
				},
			},
			{
				key: "link_health", name: "Link Health", weight: 0.5,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "broken_links", Name: "Broken Links", Weight: 1},
						build: provided(func(s optimiser.OperationSpec, p content.Provider) optimiser.Operation {
							return NewBrokenLinksCheck(s, p)
						}),
					},
				},
			},
		},
	},
	{
		key: "performance_and_speed", name: "Performance And Speed", weight: 0.15,
		factors: []factorDecl{
			{
				key: "page_speed", name: "Page Speed", weight: 0.6,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "page_speed", Name: "Page Speed", Weight: 1},
						build: func(s optimiser.OperationSpec, deps Deps) optimiser.Operation {
							return NewPageSpeedCheck(s, deps.Provider, deps.PageSpeed)
						},
					},
				},
			},
			{
				key: "safety", name: "Safe Browsing", weight: 0.2,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "safe_browsing", Name: "Safe Browsing", Weight: 1},
						build: func(s optimiser.OperationSpec, deps Deps) optimiser.Operation {
							return NewSafeBrowsingCheck(s, deps.Provider, deps.SafeBrowsing)
						},
					},
				},
			},
			{
				key: "content_freshness", name: "Content Freshness", weight: 0.2,
				operations: []operationDecl{
					{
						spec: optimiser.OperationSpec{Key: "content_update_suggestions", Name: "Content Update Suggestions", Weight: 1},
						build: func(s optimiser.OperationSpec, deps Deps) optimiser.Operation {
							return NewContentUpdateCheck(s, deps.Provider, deps.ContentUpdate)
						},
					},
				},
			},
		},
	},
}

// BuildOptimiser resolves the default tree against the given deps and flags.
func BuildOptimiser(deps Deps, flags optimiser.Flags) *optimiser.Optimiser {
	contexts := make([]optimiser.Context, 0, len(defaultTree))
	for _, cd := range defaultTree {
		octx := optimiser.Context{Key: cd.key, Name: cd.name, Weight: cd.weight}
		for _, fd := range cd.factors {
			factor := optimiser.Factor{Key: fd.key, Name: fd.name, Weight: fd.weight}
			for _, od := range fd.operations {
				factor.Operations = append(factor.Operations, od.build(od.spec, deps))
			}
			octx.Factors = append(octx.Factors, factor)
		}
		contexts = append(contexts, octx)
	}
	return &optimiser.Optimiser{Contexts: contexts, Flags: flags}
}
