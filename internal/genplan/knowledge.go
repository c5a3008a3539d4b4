package genplan

// knowledgeBase is a condensed digest of the program's real training
// material. Generated schedules are expected to draw their activities
// from it rather than invent generic ones.
const knowledgeBase = `
**Program Knowledge Base:**
Use this knowledge base, drawn from the program's real training material, to build
authentic and detailed schedules. Proposed activities SHOULD be grounded in the
examples below whenever possible.

**1. SURVIVAL TECHNIQUES:**
- Food: safe plant/fruit identification and prep hygiene (beginner); simple hunting
  and fishing traps, cooking rice in bamboo sections (advanced).
- Fire: ignition without matches (flint and striker, 9V battery and steel wool);
  safety demonstrations with flammable materials.
- Improvised shelters: simple leaf-covered frames, suspended shelters with hammock,
  robust pole structures. Materials: rope, tarp, stakes, large leaves, branches.
- First aid: CPR, bleeding control, burns, stings, fractures, sprains; drowning
  rescue with safe flotation and water removal.
- Foot care: kit assembly and maintenance on long marches.

**2. FIELD AND TACTICAL TECHNIQUES:**
- Camouflage: theory (uniform patterns, concealment vs. deception) and practice
  (face paint in green/black/brown tones, natural foliage and mud).
- Knots and lashings: square knot, clove hitch, friar's knot, square lashing;
  applications in mini-bridges, tent rigging, improvised stretchers for a
  "jungle rescue" simulation.
- Orientation: compass basics and advanced use with maps; natural methods by the
  sun and stars.
- Rope crossings: two-rope bridge, sloth crawl, commando crawl, with strong focus
  on safety and teamwork.
- Obstacle course: low-wire crawl, tactile tunnel, blindfolded rope-guided path,
  sound-based challenges.
- Self defense: strikes and kicks; grips and wrist locks; throws and sweeps;
  disarm drills.
- Tracking: reading footprints and trail signs, applying first aid in rescue
  scenarios.
- Formation drill: ceremonies, commands, parade basics.

**3. COMPETITIONS AND GROUP DYNAMICS:**
- Every seventh class of a cycle can be a large competition testing the previous
  six classes.
- Split students into teams for timed quality challenges: camouflage a teammate,
  tie specific knots, run the obstacle course, light a fire, build a shelter.
`
