package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docsPage = `<!DOCTYPE html>
<html>
<head>
<title>Configuration | Vite</title>
<meta property="og:title" content="Configuration">
</head>
<body>
<nav><a href="/">Home</a><a href="/guide">Guide</a><a href="/config">Config</a></nav>
<main>
<article>
<h1>Configuration</h1>
<p>When running vite from the command line, Vite will automatically try to resolve a config file named vite.config.js inside the project root.</p>
<p>The most basic config file looks like this, exporting a default object with the options you want to override for your project.</p>
<pre><code>export default { root: './src' }</code></pre>
<p>Vite also supports TypeScript config files, and the config can be written with conditional logic based on the command being run.</p>
</article>
</main>
<footer>Released under the MIT License.</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and main content", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(docsPage)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "resolve a config file")
	})

	t.Run("drops footer boilerplate", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(docsPage)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "MIT License")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("")

		assert.Equal(t, libdoc.EINVALID, libdoc.ErrorCode(err))
	})
}
