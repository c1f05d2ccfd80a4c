// internal/generator/templates.go
package generator

import "canon-builder/internal/models"

// markdownBodies holds the document below the "# <name>" heading for each kind.
var markdownBodies = map[models.EntityType]string{
	models.EntityTypeUniverse: `A newly created universe waiting to be explored and developed.

## Overview
This universe contains diverse worlds, intelligent species, unique cultures, and advanced technologies.

## Structure
- **Worlds**: Various planets and locations
- **Characters**: Intelligent beings and their stories  
- **Cultures**: Societies with unique values and traditions
- **Technologies**: Advanced innovations and alien tech

## Development Status
This universe is in early development. Use the "Create Content" buttons to generate new worlds, characters, cultures, and technologies.
`,
	models.EntityTypeWorld: `A newly discovered world in the universe.

## Geography
- **Type**: Terrestrial planet
- **Climate**: Temperate
- **Atmosphere**: Breathable
- **Gravity**: 1.0g standard

## Resources
- Rich mineral deposits
- Abundant water sources
- Fertile soil for agriculture
- Unique flora and fauna

## Inhabitants
This world is home to various species and cultures, each with their own unique characteristics and technologies.

## Technology Level
The inhabitants have developed various technologies appropriate to their environment and needs.
`,
	models.EntityTypeCharacter: `A newly introduced character in the universe.

## Background
- **Species**: Human
- **Origin**: Unknown
- **Role**: Explorer
- **Age**: Adult

## Personality
- Curious and adventurous
- Diplomatic and thoughtful
- Skilled in various areas
- Known for problem-solving abilities

## Abilities
- Communication skills
- Technical knowledge
- Leadership qualities
- Adaptability

## Relationships
This character has connections to various other beings and organizations in the universe.
`,
	models.EntityTypeCulture: `A newly discovered culture in the universe.

## Overview
This culture represents a unique way of life with its own values, traditions, and social structures.

## Values
- **Core Principles**: Harmony, wisdom, and growth
- **Social Structure**: Community-oriented
- **Decision Making**: Consensus-based
- **Individual Rights**: Balanced with community needs

## Traditions
- Unique cultural practices
- Artistic expressions
- Rituals and ceremonies
- Storytelling traditions

## Technology
The culture has developed technologies that reflect their values and environmental needs.

## Government
A system of governance that aligns with their cultural values and social structure.
`,
	models.EntityTypeTechnology: `A newly developed technology in the universe.

## Overview
This technology represents a significant advancement in the universe's technological capabilities.

## Principles
- **Function**: Core purpose and operation
- **Energy Source**: Power requirements and sources
- **Materials**: Required components and resources
- **Maintenance**: Upkeep and repair needs

## Applications
- Primary uses and benefits
- Secondary applications
- Potential future developments
- Limitations and constraints

## Impact
- Effects on society and culture
- Economic implications
- Environmental considerations
- Ethical implications

## Development
- Research and development process
- Key inventors and contributors
- Timeline of development
- Future potential improvements
`,
}
