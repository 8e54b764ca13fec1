// Package card turns character-card payloads into canonical profiles.
//
// It covers the three JSON dialects in circulation: legacy flat cards
// (v1), cards nested under a "data" object (v2) and v3 cards marked by
// spec "chara_card_v3" or spec_version "3.0". For PNG cards it also
// locates and decodes the embedded "chara" text entry.
package card
