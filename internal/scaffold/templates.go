package scaffold

// Starter program bodies keyed by template name.
var templates = map[string]string{
	"basic": `# Basic PohLang Program
Write "Hello from PohLang!"
Write "This is a basic project template."
`,
	"console": `# Console Application Template
Write "Welcome to your PohLang console application!"
Write ""

Ask for name
Write "Hello " plus name plus "!"

Set count to 0
Repeat 3
    Set count to count plus 1
    Write "Loop iteration: " plus count
End

Write ""
Write "Thanks for using PohLang!"
`,
	"web": `# Web Application Template (Experimental)
Write "Web application features coming soon!"
Write "For now, this is a placeholder."
`,
}

// starterTest seeds the tests directory so 'plhub test' has something to
// run immediately.
const starterTest = `# Smoke test: exits zero when the runtime works at all.
Write "smoke test ok"
`

// defaultTheme is the starter ui/styles entry.
const defaultTheme = `{
  "name": "default_light",
  "colors": {
    "background": "#ffffff",
    "foreground": "#1f2430",
    "accent": "#3b82f6"
  }
}
`

// starterWidget is the starter ui/widgets entry.
const starterWidget = `{
  "name": "card",
  "description": "A simple bordered content card",
  "template": [
    "Write \"+----------------+\"",
    "Write \"| {{title}}      |\"",
    "Write \"+----------------+\""
  ]
}
`
