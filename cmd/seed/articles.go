package main

type seedArticle struct {
	title   string
	section string
	body    string
	publish bool
}

// seedArticles covers a clean structured article, a legacy one, and one
// that the strict policy refuses to publish
func seedArticles() []seedArticle {
	return []seedArticle{
		{
			title:   "Harbour reopens after storm repairs",
			section: "Local",
			publish: true,
			body: `The harbour reopened on Monday after three weeks of repairs to the sea wall.

:::image
src: https://cdn.example.com/harbour/wall.jpg
alt: Workers finishing the repaired sea wall at low tide
width: 1600
height: 900
caption: The last section of the wall was finished on Sunday
credit: Staff photographer
:::

Fishing boats were the first to return, followed by the ferry in the afternoon.

## What changed

:::quote
We built it to take a storm twice the size of this one
attribution: Harbour engineer
:::

The council says the work came in under budget.
`,
		},
		{
			title:   "Letters to the editor",
			section: "Opinion",
			publish: true,
			body: `Readers wrote in about the new bus timetable.

## Too early

> "The first bus now leaves before the bakery opens" — A commuter

Others welcomed the later evening services.
`,
		},
		{
			title:   "Festival gallery",
			section: "Culture",
			publish: true,
			body: `:::video
provider: youtube
videoId: dQw4w9WgXcQ
caption: Opening night
:::

Highlights from the first night of the festival.
`,
		},
	}
}
