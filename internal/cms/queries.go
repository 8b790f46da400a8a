package cms

// resourceProjection expands image assets so most images arrive with a URL
// and only fall back to reference parsing when the asset is not expanded.
const resourceProjection = `{
  _id,
  title,
  "slug": slug.current,
  excerpt,
  "coverImage": coverImage{alt, asset->{_id, url}},
  "galleryImages": galleryImages[]{alt, asset->{_id, url}},
  category,
  type,
  tags,
  topics,
  author{name, role, "avatar": avatar{asset->{_id, url}}},
  publishedAt,
  readTime,
  featured,
  keyPoints,
  tableOfContents,
  webinar{..., speakers[]{name, role, "avatar": avatar{asset->{_id, url}}}},
  downloadable{..., "previewImages": previewImages[]{asset->{_id, url}}},
  client{..., "logo": logo{asset->{_id, url}}},
  resultsMetrics,
  challengeSection,
  solutionSection,
  resultsSection,
  testimonial
}`

// ResourceBySlugQuery fetches one published resource. Param: $slug.
const ResourceBySlugQuery = `*[_type == "resource" && slug.current == $slug && !(_id in path("drafts.**"))][0]` + resourceProjection

// ResourceListQuery fetches every published resource, newest first.
const ResourceListQuery = `*[_type == "resource" && defined(slug.current) && !(_id in path("drafts.**"))] | order(publishedAt desc)` + resourceProjection
