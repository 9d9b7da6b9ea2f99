package corpus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanjayganatra/satsang-qa-portal/internal/model"
)

func TestExtractKeywordsRanksByFrequencyThenAlpha(t *testing.T) {
	records := []*model.Record{
		{CleanTranslatedQuestion: "anger control during meditation"},
		{CleanTranslatedQuestion: "anger comes while chanting"},
		{CleanTranslatedQuestion: "anger and attachment"},
	}
	keywords := ExtractKeywords(records, 3)
	require.Equal(t, "anger", keywords[0])
	require.Len(t, keywords, 3)
	require.IsIncreasing(t, keywords[1:])
}

func TestExtractKeywordsSkipsStopAndFillerWords(t *testing.T) {
	records := []*model.Record{
		{CleanTranslatedQuestion: "please guide about guru seva question"},
	}
	keywords := ExtractKeywords(records, 10)
	require.Equal(t, []string{"seva"}, keywords)
}

func TestExtractKeywordsFallsBackToTranslatedAnswer(t *testing.T) {
	records := []*model.Record{
		{TranslatedAnswer: "Chant with devotion every morning"},
	}
	keywords := ExtractKeywords(records, 10)
	require.Contains(t, keywords, "devotion")
	require.Contains(t, keywords, "chant")
	require.NotContains(t, keywords, "with")
}

func TestExtractKeywordsClampsToTopN(t *testing.T) {
	records := []*model.Record{
		{CleanTranslatedQuestion: "attachment anger devotion surrender patience"},
	}
	keywords := ExtractKeywords(records, 2)
	require.Len(t, keywords, 2)
}
