package mcpserver

// ContentSchema describes the collection documents Folio serves. LLM
// clients read it before suggesting changes to the content directory.
const ContentSchema = `# Folio Content Schema

Content lives in two documents at the root of the content directory:
` + "`" + `experience.yaml` + "`" + ` and ` + "`" + `projects.yaml` + "`" + ` (` + "`" + `.yml` + "`" + ` and ` + "`" + `.json` + "`" + ` are also accepted).
Each document is a list of records. List order is display order.

## experience

` + "```" + `yaml
- id: acme-senior            # REQUIRED, unique in the document
  title: Senior Engineer     # REQUIRED
  organizationName: Acme     # REQUIRED
  location: Berlin           # optional
  startDate: 2024-01         # optional, YYYY-MM or YYYY-MM-DD
  endDate: 2024-12           # optional, absent means ongoing
  experienceType: Full-time  # optional
  link: https://acme.example # optional, must be a URL
  description: |             # optional
    What the role involved.
` + "```" + `

## projects

` + "```" + `yaml
- id: folio                            # REQUIRED, unique in the document
  projectName: Folio                   # REQUIRED
  projectType: Web service             # optional
  projectDescription: Portfolio API    # optional
  githubLink: https://github.com/x/y   # optional, must be a URL
  liveLink: https://example.com        # optional, must be a URL
  mainScreenshot: /assets/folio.svg    # optional, cover image
  techStack: Go, SQLite, chi           # optional, comma-separated
  architectureDetails: ...             # optional
  designDecisions: ...                 # optional
` + "```" + `

## Rules

1. Unknown keys are rejected; the whole document fails to load.
2. ` + "`" + `endDate` + "`" + ` must not be before ` + "`" + `startDate` + "`" + `.
3. Cover images go in ` + "`" + `assets/` + "`" + ` and are served at ` + "`" + `/assets/<filename>` + "`" + `.
4. The first projects in the document are featured on the home page.
`
