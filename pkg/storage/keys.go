// Package storage holds the durable key names and the shared decoding pass
// applied to every collection read back from a client's bucket.
package storage

const (
	KeyCrops            = "agniro_userCrops_uganda"
	KeyArchivedArticles = "agniro_archivedAiArticles"
	KeyHiddenStaticIDs  = "agniro_deletedStaticArticleIds"
	KeyVideoLinks       = "agniro_userVideoLinks"
)
