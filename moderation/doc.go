// Package moderation screens user-submitted forum text.
//
// A Gate combines a word-list profanity filter with a sentiment scorer. Posts
// and comments use different profanity policies: a post is rejected only when
// every screened field is profane, a comment when its single field is. Sentiment
// is summed across fields and rejected when the total is negative.
package moderation
