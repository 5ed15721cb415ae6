// Package resources serves the dashboard's static assets.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Stylesheet is the dashboard stylesheet file under the static root.
const Stylesheet = "dashboard.css"

// DatastarScript is the datastar client bundle the pages load.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
