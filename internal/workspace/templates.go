package workspace

// Static onboarding documents written into the workspace. These are
// templates, not user data: every run overwrites them unconditionally.

const testGuideContent = `# MCP Test Suite

## Run these tests in Claude to verify your setup:

### 1. Filesystem Test
` + "```" + `
List all files in my workspace
` + "```" + `

### 2. GitHub Test
` + "```" + `
Show my recent GitHub activity
` + "```" + `

### 3. Search Test
` + "```" + `
Search for "latest AI news"
` + "```" + `

### 4. Memory Test
` + "```" + `
Remember this: "MCP setup completed successfully"
Then ask: "What did I just ask you to remember?"
` + "```" + `

### 5. Combined Test
` + "```" + `
Create a new file called test.py with a hello world function,
then commit it to a new GitHub repo
` + "```" + `

## Expected Results:
- Each command should execute without errors
- You should see actual results (files, search results, etc.)
- Memory should persist across messages

## Troubleshooting:
If any test fails:
1. Restart Claude Desktop
2. Check the config file exists
3. Verify API keys are set correctly
`

const projectReadmeContent = `# New Project

Created with MCP Quickstart

## Features
- [ ] Core functionality
- [ ] Tests
- [ ] Documentation

## Getting Started
Ask Claude to help you build this project!
`

const projectGitignoreContent = `node_modules/
.env
*.log
.DS_Store
dist/
build/
`
