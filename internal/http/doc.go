// Package http serves the blog over gin.
//
// Routes:
//   - Pages: /blog, /blog.html, /blog/{slug}, /blog-post.html?slug=
//   - Raw artifacts: the JSON index, blogs.json and files under the content prefix
//   - JSON API: /api/blogs, /api/blogs/{slug}, /api/unlock, /api/index/rebuild
//
// Page handlers always answer 200 with the rendered page, error panels
// included. Unknown routes answer 404.
package http
